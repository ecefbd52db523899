package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error)
}

// CatalogRepository интерфейс поиска бизнесов и товаров
type CatalogRepository interface {
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ServiceResolver поиск услуги для записи (услуга или товар вида service)
type ServiceResolver interface {
	ResolveService(ctx context.Context, serviceID int64) (*domain.BookableItem, error)
}

// AvailabilityChecker проверка свободных столов и слотов записи
type AvailabilityChecker interface {
	CheckTableCapacity(ctx context.Context, business *domain.Business, date time.Time, bookingTime string, requested int) (*domain.TableAvailability, error)
	CheckAppointmentSlot(ctx context.Context, businessID int64, item *domain.BookableItem, date time.Time, bookingTime string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// Metrics счетчики принятых и отклоненных бронирований
type Metrics interface {
	IncBookingAdmitted(bookingType string)
	IncBookingRejected(bookingType, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
