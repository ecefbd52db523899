package get_table_availability

import (
	"context"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// CatalogRepository интерфейс поиска бизнесов
type CatalogRepository interface {
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
}

// AvailabilityChecker подсчет свободных столов
type AvailabilityChecker interface {
	TableAvailability(ctx context.Context, business *domain.Business, date time.Time, bookingTime string) (*domain.TableAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
