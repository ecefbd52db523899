package domain

import (
	"errors"
	"strings"
	"time"
)

// Business validation constants
const (
	MinTotalTables     = 1
	DefaultTotalTables = 10
	MaxNoteLength      = 500
)

// Date format constants
const (
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	DateTimeLocalFormat = "2006-01-02T15:04" // HTML datetime-local input
)

// ErrInvalidDateFormat is returned by ParseBookingDate
var ErrInvalidDateFormat = errors.New("invalid booking date format")

// zonedLayouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// localLayouts are interpreted in the booking time zone
var localLayouts = []string{
	"2006-01-02T15:04:05",
	DateTimeLocalFormat,
	"2006-01-02 15:04",
	DateFormat,
}

// ParseBookingDate parses a booking date in one of the accepted layouts.
// Values without an offset are interpreted in loc.
func ParseBookingDate(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}
