// Package catalog - чтение бизнесов, товаров, услуг и пользователей.
// Управление этими сущностями выполняют другие сервисы, здесь только поиск по ID.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LocalBiz-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessByID получает бизнес по ID
func (r *Repository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"contact",
		"type",
		"total_tables",
		"owner_id",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		business domain.Business
		ownerID  sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.Address,
		&business.Contact,
		&business.Type,
		&business.TotalTables,
		&ownerID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - scan business: %v", ErrScanRow, err)
	}

	if ownerID.Valid {
		business.OwnerID = &ownerID.Int64
	}

	return &business, nil
}

// GetProductByID получает товар по ID (любого вида: product или service)
func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"price",
		"kind",
	).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		product domain.Product
		price   sql.NullFloat64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.BusinessID,
		&product.Name,
		&price,
		&product.Kind,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProductByID - scan product: %v", ErrScanRow, err)
	}

	if price.Valid {
		product.Price = &price.Float64
	}

	return &product, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"price",
		"duration",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service domain.Service
		price   sql.NullFloat64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&price,
		&service.Duration,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	if price.Valid {
		service.Price = &price.Float64
	}

	return &service, nil
}

// GetUserByID получает пользователя по ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"role",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserByID - scan user: %v", ErrScanRow, err)
	}

	return &user, nil
}
