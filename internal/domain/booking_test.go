package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingType(t *testing.T) {
	tests := []struct {
		raw      string
		expected BookingType
		ok       bool
	}{
		{"order", BookingTypeOrder, true},
		{"TABLE", BookingTypeTable, true},
		{" Appointment ", BookingTypeAppointment, true},
		{"", "", false},
		{"delivery", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseBookingType(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.expected, got, tt.raw)
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus("Confirmed")
	require.True(t, ok)
	assert.Equal(t, StatusDone, s)

	s, ok = ParseBookingStatus("CANCELLED")
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, s)

	_, ok = ParseBookingStatus("archived")
	assert.False(t, ok)
}

func TestParseStatusFor(t *testing.T) {
	tests := []struct {
		bookingType BookingType
		raw         string
		expected    BookingStatus
		ok          bool
	}{
		{BookingTypeTable, "confirmed", StatusDone, true},
		{BookingTypeTable, "done", StatusDone, true},
		{BookingTypeTable, "cancelled", StatusCancelled, true},
		{BookingTypeOrder, "Done", StatusDone, true},
		{BookingTypeOrder, "confirmed", "", false},
		{BookingTypeAppointment, "confirmed", "", false},
		{BookingTypeAppointment, "pending", StatusPending, true},
		{BookingTypeAppointment, "archived", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatusFor(tt.bookingType, tt.raw)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.bookingType, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.expected, got, "%s/%s", tt.bookingType, tt.raw)
		}
	}
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusDone))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDone.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusDone))

	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestBooking_DisplayStatus(t *testing.T) {
	table := Booking{Type: BookingTypeTable, Status: StatusDone}
	assert.Equal(t, StatusConfirmed, table.DisplayStatus())

	order := Booking{Type: BookingTypeOrder, Status: StatusDone}
	assert.Equal(t, StatusDone, order.DisplayStatus())
}

func TestBusiness_Accepts(t *testing.T) {
	b := Business{Type: BookingTypeTable}
	assert.True(t, b.Accepts("Table"))
	assert.False(t, b.Accepts("order"))
}

func TestTableAvailability(t *testing.T) {
	a := TableAvailability{TotalTables: 10, BookedTables: 7}
	assert.Equal(t, 3, a.AvailableTables())
	assert.True(t, a.Fits(3))
	assert.False(t, a.Fits(4))
	assert.False(t, a.Fits(math.MaxInt))
	assert.False(t, a.IsFull())
	assert.InDelta(t, 70.0, a.OccupancyRate(), 0.001)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC) // 02:30 on the 15th in UTC+3

	start, end := DayBounds(ts, loc)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999999999, loc), end)
}

func TestParseBookingDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	got, err := ParseBookingDate("2026-03-14T19:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)))

	got, err = ParseBookingDate("2026-03-14T19:00", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 14, 19, 0, 0, 0, loc)))

	got, err = ParseBookingDate("2026-03-14", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, loc)))

	_, err = ParseBookingDate("not-a-date", loc)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
