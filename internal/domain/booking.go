package domain

import (
	"strings"
	"time"
)

// BookingType is the kind of booking; it always equals the business type
type BookingType string

const (
	BookingTypeOrder       BookingType = "order"
	BookingTypeTable       BookingType = "table"
	BookingTypeAppointment BookingType = "appointment"
)

// ParseBookingType normalizes a raw type value case-insensitively
func ParseBookingType(raw string) (BookingType, bool) {
	switch t := BookingType(strings.ToLower(strings.TrimSpace(raw))); t {
	case BookingTypeOrder, BookingTypeTable, BookingTypeAppointment:
		return t, true
	default:
		return "", false
	}
}

func (t BookingType) String() string {
	return string(t)
}

// BookingStatus represents the stored status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusDone      BookingStatus = "done"
	StatusCancelled BookingStatus = "cancelled"

	// StatusConfirmed is how table bookings present StatusDone. It is never stored.
	StatusConfirmed BookingStatus = "confirmed"
)

// validTransitions is the booking state machine
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusDone, StatusCancelled},
	StatusDone:      {},
	StatusCancelled: {},
}

// ParseBookingStatus normalizes a status value; "confirmed" is accepted as an alias of "done"
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == StatusConfirmed {
		return StatusDone, true
	}
	if _, ok := validTransitions[s]; ok {
		return s, true
	}
	return "", false
}

// ParseStatusFor normalizes a status value against the allow-list of booking type t.
// "confirmed" is accepted for table bookings only; "done" is accepted for every type.
func ParseStatusFor(t BookingType, raw string) (BookingStatus, bool) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == StatusConfirmed {
		return StatusDone, t == BookingTypeTable
	}
	if _, ok := validTransitions[s]; ok {
		return s, true
	}
	return "", false
}

// CanTransitionTo returns true if the state machine allows moving to target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a single order, table reservation or appointment
type Booking struct {
	ID         int64
	UserID     int64
	BusinessID int64
	Type       BookingType

	ProductID *int64 // order only
	ServiceID *int64 // appointment only

	// ServiceSource tells whether ServiceID refers to a Service or a legacy service-kind Product
	ServiceSource ItemSource

	TableCount  *int       // table only
	BookingDate *time.Time // table and appointment
	BookingTime string     // opaque slot label, compared by exact match

	DeliveryAddress *string // order only
	DeliveryContact *string // order only

	Note   string
	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still counts toward capacity and slot occupancy
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelledByUser returns true if the owner may still cancel the booking
func (b *Booking) CanBeCancelledByUser() bool {
	return b.Status == StatusPending
}

// Tables returns the reserved table count, zero for non-table bookings
func (b *Booking) Tables() int {
	if b.TableCount == nil {
		return 0
	}
	return *b.TableCount
}

// DisplayStatus returns the status label shown to clients
func (b *Booking) DisplayStatus() BookingStatus {
	if b.Type == BookingTypeTable && b.Status == StatusDone {
		return StatusConfirmed
	}
	return b.Status
}

// BookingsFilter selects bookings. Nil fields are not applied.
type BookingsFilter struct {
	UserID     *int64
	BusinessID *int64
	ServiceID  *int64
	Type       *BookingType

	ServiceSource *ItemSource
	Status        *BookingStatus

	DateFrom  *time.Time // inclusive
	DateTo    *time.Time // inclusive
	ExactDate *time.Time

	BookingTime *string

	ExcludeCancelled bool
}

// UserRef is the resolved requester shown next to a booking
type UserRef struct {
	ID    int64
	Name  string
	Email string
}

// BusinessRef is the resolved business shown next to a booking
type BusinessRef struct {
	ID          int64
	Name        string
	Address     string
	Contact     string
	TotalTables int
	Type        BookingType
}

// ItemRef is the resolved product or service shown next to a booking
type ItemRef struct {
	ID       int64
	Name     string
	Price    *float64
	Duration *string
}

// BookingView is a booking with its references resolved for display.
// It is a read-only projection and is never persisted.
type BookingView struct {
	Booking  Booking
	User     *UserRef
	Business *BusinessRef
	Product  *ItemRef
	Service  *ItemRef
}
