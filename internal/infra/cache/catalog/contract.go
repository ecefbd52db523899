package catalog

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Source источник данных каталога (репозиторий PostgreSQL или хранилище в памяти)
type Source interface {
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
