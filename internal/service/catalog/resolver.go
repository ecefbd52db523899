// Package catalog разрешает ссылку на услугу для записи.
// Услуга ищется сначала среди Service, затем среди товаров вида service (устаревший способ хранения услуг).
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
)

// Resolver поиск услуг для записи
type Resolver struct {
	repo   CatalogRepository
	logger Logger
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(repo CatalogRepository, logger Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
	}
}

// ResolveService находит услугу по ID
// Товар вида product никогда не считается услугой
func (r *Resolver) ResolveService(ctx context.Context, serviceID int64) (*domain.BookableItem, error) {
	// 1. Основной источник - услуги
	service, err := r.repo.GetServiceByID(ctx, serviceID)
	if err == nil {
		return domain.BookableFromService(service), nil
	}
	if !errors.Is(err, catalogRepo.ErrServiceNotFound) {
		r.logger.Error("ResolveService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ResolveService - get service: %v", ErrInternal, err)
	}

	// 2. Fallback - товар вида service
	product, err := r.repo.GetProductByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProductNotFound) {
			r.logger.Warn("ResolveService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		r.logger.Error("ResolveService: failed to get product id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ResolveService - get product: %v", ErrInternal, err)
	}

	if product.Kind != domain.ProductKindService {
		r.logger.Warn("ResolveService: product id=%d has kind=%s, not a service", serviceID, product.Kind)
		return nil, ErrServiceNotFound
	}

	r.logger.Info("ResolveService: service id=%d resolved from legacy product", serviceID)
	return domain.BookableFromProduct(product), nil
}
