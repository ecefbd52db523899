package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/LocalBiz-BookingService/pkg/logger"
)

func TestResolver_ResolveService(t *testing.T) {
	store := memory.NewStore()
	store.AddService(domain.Service{ID: 1, BusinessID: 2, Name: "Haircut", Duration: "45 min"})
	store.AddProduct(domain.Product{ID: 3, BusinessID: 5, Name: "Morning class", Kind: domain.ProductKindService})
	store.AddProduct(domain.Product{ID: 4, BusinessID: 5, Name: "Yoga mat", Kind: domain.ProductKindProduct})

	resolver := NewResolver(store, logger.NewNop())

	tests := []struct {
		name       string
		serviceID  int64
		wantSource domain.ItemSource
		wantErr    error
	}{
		{name: "service", serviceID: 1, wantSource: domain.ItemSourceService},
		{name: "legacy service-kind product", serviceID: 3, wantSource: domain.ItemSourceLegacyProduct},
		{name: "regular product is not a service", serviceID: 4, wantErr: ErrServiceNotFound},
		{name: "missing", serviceID: 99, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := resolver.ResolveService(context.Background(), tt.serviceID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, item.Source)
			assert.Equal(t, tt.serviceID, item.ID)
		})
	}
}

type failingRepo struct{}

func (failingRepo) GetProductByID(context.Context, int64) (*domain.Product, error) {
	return nil, errors.New("connection reset")
}

func (failingRepo) GetServiceByID(context.Context, int64) (*domain.Service, error) {
	return nil, errors.New("connection reset")
}

func TestResolver_RepositoryFailure(t *testing.T) {
	resolver := NewResolver(failingRepo{}, logger.NewNop())

	_, err := resolver.ResolveService(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
