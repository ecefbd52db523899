package models

import (
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	ActorIsAdmin bool   `json:"-"`
	Status       string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetAllBookingsRequest запрос администратора на получение всех бронирований
type GetAllBookingsRequest struct {
	Type *string `json:"type,omitempty"` // Фильтр по типу (опционально)
}

// Response модели

// UserResponse пользователь, создавший бронирование
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BusinessResponse бизнес бронирования
type BusinessResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	Type        string `json:"type"`
	TotalTables int    `json:"totalTables,omitempty"`
}

// ItemResponse товар или услуга бронирования
type ItemResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	Duration *string  `json:"duration,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	BusinessID  int64   `json:"businessId"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	ProductID   *int64  `json:"productId,omitempty"`
	ServiceID   *int64  `json:"serviceId,omitempty"`
	TableCount  *int    `json:"tableCount,omitempty"`
	BookingDate *string `json:"bookingDate,omitempty"` // ISO 8601
	BookingTime string  `json:"bookingTime,omitempty"`

	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	DeliveryContact *string `json:"deliveryContact,omitempty"`
	Note            string  `json:"note,omitempty"`

	// Денормализованные данные
	User     *UserResponse     `json:"user,omitempty"`
	Business *BusinessResponse `json:"business,omitempty"`
	Product  *ItemResponse     `json:"product,omitempty"`
	Service  *ItemResponse     `json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse счетчики для панели администратора
type StatsResponse struct {
	TotalBookings int64            `json:"totalBookings"`
	TableBookings int64            `json:"tableBookings"`
	ByType        map[string]int64 `json:"byType"`
}

// Методы конвертации

// FromDomainView конвертирует проекцию бронирования в DTO
func FromDomainView(v *domain.BookingView) *BookingResponse {
	if v == nil {
		return nil
	}

	b := v.Booking
	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		BusinessID:      b.BusinessID,
		Type:            b.Type.String(),
		Status:          b.DisplayStatus().String(),
		ProductID:       b.ProductID,
		ServiceID:       b.ServiceID,
		TableCount:      b.TableCount,
		BookingTime:     b.BookingTime,
		DeliveryAddress: b.DeliveryAddress,
		DeliveryContact: b.DeliveryContact,
		Note:            b.Note,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.BookingDate != nil {
		date := b.BookingDate.Format(time.RFC3339)
		resp.BookingDate = &date
	}

	if v.User != nil {
		resp.User = &UserResponse{ID: v.User.ID, Name: v.User.Name, Email: v.User.Email}
	}

	if v.Business != nil {
		resp.Business = &BusinessResponse{
			ID:      v.Business.ID,
			Name:    v.Business.Name,
			Address: v.Business.Address,
			Contact: v.Business.Contact,
			Type:    v.Business.Type.String(),
		}
		if v.Business.Type == domain.BookingTypeTable {
			resp.Business.TotalTables = v.Business.TotalTables
		}
	}

	resp.Product = fromItemRef(v.Product)
	resp.Service = fromItemRef(v.Service)

	return resp
}

// FromDomainViewList конвертирует список проекций в DTO
func FromDomainViewList(views []*domain.BookingView) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(views)),
	}

	for _, view := range views {
		if bookingResp := FromDomainView(view); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromTypeCounts собирает статистику по количеству бронирований каждого типа
func FromTypeCounts(counts map[domain.BookingType]int64) *StatsResponse {
	resp := &StatsResponse{ByType: make(map[string]int64, len(counts))}
	for bookingType, count := range counts {
		resp.ByType[bookingType.String()] = count
		resp.TotalBookings += count
	}
	resp.TableBookings = counts[domain.BookingTypeTable]
	return resp
}

func fromItemRef(ref *domain.ItemRef) *ItemResponse {
	if ref == nil {
		return nil
	}
	return &ItemResponse{ID: ref.ID, Name: ref.Name, Price: ref.Price, Duration: ref.Duration}
}
