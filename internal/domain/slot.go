package domain

import "time"

// TableAvailability describes table occupancy of one business slot (day + time label)
type TableAvailability struct {
	BusinessID   int64
	Date         time.Time
	BookingTime  string
	TotalTables  int
	BookedTables int
}

// AvailableTables returns the number of tables that can still be reserved
func (a *TableAvailability) AvailableTables() int {
	free := a.TotalTables - a.BookedTables
	if free < 0 {
		return 0
	}
	return free
}

// Fits returns true if requested more tables can be reserved
func (a *TableAvailability) Fits(requested int) bool {
	return requested <= a.TotalTables-a.BookedTables
}

// IsFull returns true if the slot has no free tables
func (a *TableAvailability) IsFull() bool {
	return a.AvailableTables() == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (a *TableAvailability) OccupancyRate() float64 {
	if a.TotalTables == 0 {
		return 0
	}
	return float64(a.BookedTables) / float64(a.TotalTables) * 100
}

// DayBounds returns the inclusive start and end of the calendar day of t in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
