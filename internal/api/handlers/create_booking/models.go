package create_booking

import (
	"encoding/json"
	"strings"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/LocalBiz-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID int64  `json:"businessId"`
	Type       string `json:"type"` // order | table | appointment

	ProductID *int64 `json:"productId,omitempty"`
	ServiceID *int64 `json:"serviceId,omitempty"`

	// TableCount принимается и числом, и строкой ("2")
	TableCount  json.RawMessage `json:"tableCount,omitempty"`
	BookingDate string          `json:"bookingDate,omitempty"` // "2025-06-01", "2025-06-01T19:00" или RFC3339
	BookingTime string          `json:"bookingTime,omitempty"` // "19:00"

	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	DeliveryContact string `json:"deliveryContact,omitempty"`

	Note string `json:"note,omitempty"`
}

// AvailabilityResponse занятость столов на момент бронирования
type AvailabilityResponse struct {
	TotalTables     int `json:"totalTables"`
	BookedTables    int `json:"bookedTables"`
	AvailableTables int `json:"availableTables"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Message      string                  `json:"message"`
	Booking      *models.BookingResponse `json:"booking"`
	Availability *AvailabilityResponse   `json:"availability,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(requester *domain.User) *createBooking.Request {
	return &createBooking.Request{
		Requester:       requester,
		BusinessID:      r.BusinessID,
		Type:            r.Type,
		ProductID:       r.ProductID,
		ServiceID:       r.ServiceID,
		TableCount:      rawScalar(r.TableCount),
		BookingDate:     r.BookingDate,
		BookingTime:     r.BookingTime,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryContact: r.DeliveryContact,
		Note:            r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		Message: msgCreated,
		Booking: models.FromDomainView(resp.Booking),
	}

	if a := resp.Availability; a != nil {
		// Занятость после создания бронирования
		booked := a.BookedTables
		if resp.Booking != nil {
			booked += resp.Booking.Booking.Tables()
		}
		result.Availability = &AvailabilityResponse{
			TotalTables:     a.TotalTables,
			BookedTables:    booked,
			AvailableTables: a.TotalTables - booked,
		}
	}

	return result
}

// rawScalar превращает JSON число или строку в строку, null и отсутствие поля в ""
func rawScalar(raw json.RawMessage) string {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return value
}
