package mq

// Routing keys событий бронирований
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeyBookingDeleted       = "booking.deleted"
)
