package availability

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// BookingRepository интерфейс чтения бронирований
// Внутри транзакции реализация должна блокировать найденные строки
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
