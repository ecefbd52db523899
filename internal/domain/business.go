package domain

import "strings"

// Business is a listed business accepting exactly one booking type
type Business struct {
	ID          int64
	Name        string
	Address     string
	Contact     string
	Type        BookingType
	TotalTables int // capacity per slot, only meaningful for table businesses
	OwnerID     *int64
}

// Accepts returns true if the business takes bookings of the raw requested type (case-insensitive)
func (b *Business) Accepts(requestedType string) bool {
	return strings.EqualFold(string(b.Type), strings.TrimSpace(requestedType))
}

// Ref returns the display reference of the business
func (b *Business) Ref() *BusinessRef {
	return &BusinessRef{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		Contact:     b.Contact,
		TotalTables: b.TotalTables,
		Type:        b.Type,
	}
}
