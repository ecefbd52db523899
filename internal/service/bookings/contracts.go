package bookings

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error)
	ListViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error)
	CancelOwnPending(ctx context.Context, id, userID int64) error
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	CountByType(ctx context.Context) (map[domain.BookingType]int64, error)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Metrics счетчик переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
