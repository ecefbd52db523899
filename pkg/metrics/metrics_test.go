package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("test-service", prometheus.NewRegistry())

	m.IncBookingAdmitted("table")
	m.IncBookingAdmitted("table")
	m.IncBookingRejected("table", "capacity_exceeded")
	m.IncStatusTransition("pending", "done")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsAdmitted.WithLabelValues("table")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsRejected.WithLabelValues("table", "capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("pending", "done")))
}

func TestMetrics_HTTPAndDB(t *testing.T) {
	m := NewWithRegisterer("test-service", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 15*time.Millisecond)
	m.ObserveDBQuery("SELECT", time.Millisecond, nil)
	m.ObserveDBQuery("INSERT", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.dbQueryDuration))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingAdmitted("order")
		m.IncBookingRejected("order", "wrong_item_kind")
		m.IncStatusTransition("pending", "cancelled")
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveDBQuery("SELECT", time.Millisecond, nil)
	})
}
