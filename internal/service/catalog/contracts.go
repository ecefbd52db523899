package catalog

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// CatalogRepository интерфейс поиска услуг и товаров
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
