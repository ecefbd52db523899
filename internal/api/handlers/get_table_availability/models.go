package get_table_availability

import (
	getTableAvailability "github.com/m04kA/LocalBiz-BookingService/internal/usecase/get_table_availability"
)

// TableAvailabilityResponse HTTP response model
type TableAvailabilityResponse struct {
	BusinessID      int64   `json:"businessId"`
	BusinessName    string  `json:"businessName"`
	Date            string  `json:"date"`
	BookingTime     string  `json:"bookingTime"`
	TotalTables     int     `json:"totalTables"`
	BookedTables    int     `json:"bookedTables"`
	AvailableTables int     `json:"availableTables"`
	OccupancyRate   float64 `json:"occupancyRate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTableAvailability.Response, date string) *TableAvailabilityResponse {
	a := resp.Availability
	return &TableAvailabilityResponse{
		BusinessID:      resp.Business.ID,
		BusinessName:    resp.Business.Name,
		Date:            date,
		BookingTime:     a.BookingTime,
		TotalTables:     a.TotalTables,
		BookedTables:    a.BookedTables,
		AvailableTables: a.AvailableTables(),
		OccupancyRate:   a.OccupancyRate(),
	}
}
