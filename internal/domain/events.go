package domain

import "time"

// BookingEvent is published to the message broker on booking changes
type BookingEvent struct {
	BookingID      int64         `json:"bookingId"`
	UserID         int64         `json:"userId"`
	BusinessID     int64         `json:"businessId"`
	Type           BookingType   `json:"type"`
	Status         BookingStatus `json:"status"`
	PreviousStatus BookingStatus `json:"previousStatus,omitempty"`
	BookingDate    *time.Time    `json:"bookingDate,omitempty"`
	BookingTime    string        `json:"bookingTime,omitempty"`
	TableCount     *int          `json:"tableCount,omitempty"`
	OccurredAt     time.Time     `json:"occurredAt"`
}

// NewBookingEvent builds an event from the current state of a booking
func NewBookingEvent(b *Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		BusinessID:  b.BusinessID,
		Type:        b.Type,
		Status:      b.DisplayStatus(),
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		TableCount:  b.TableCount,
		OccurredAt:  occurredAt,
	}
}
