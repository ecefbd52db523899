package booking

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

// viewColumns колонки связанных сущностей, идут после bookingColumns
var viewColumns = []string{
	"u.id", "u.name", "u.email",
	"biz.id", "biz.name", "biz.address", "biz.contact", "biz.total_tables", "biz.type",
	"p.id", "p.name", "p.price",
	"COALESCE(s.id, sp.id)", "COALESCE(s.name, sp.name)", "COALESCE(s.price, sp.price)", "s.duration",
}

// viewSelect строит SELECT бронирований с LEFT JOIN на пользователя, бизнес, товар и услугу
// Висячие ссылки (удаленный бизнес или товар) дают пустые связанные поля, а не ошибку
func viewSelect() squirrel.SelectBuilder {
	columns := make([]string, 0, len(bookingColumns)+len(viewColumns))
	for _, c := range bookingColumns {
		columns = append(columns, "b."+c)
	}
	columns = append(columns, viewColumns...)

	return psqlbuilder.Select(columns...).
		From(bookingsTable + " b").
		LeftJoin("users u ON u.id = b.user_id").
		LeftJoin("businesses biz ON biz.id = b.business_id").
		LeftJoin("products p ON p.id = b.product_id").
		LeftJoin("services s ON s.id = b.service_id AND b.service_source = 'service'").
		LeftJoin("products sp ON sp.id = b.service_id AND b.service_source = 'legacy_product'")
}

// GetViewByID получает бронирование вместе со связанными сущностями
func (r *Repository) GetViewByID(ctx context.Context, id int64) (*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := viewSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetViewByID - build select query: %v", ErrBuildQuery, err)
	}

	view, err := scanView(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetViewByID - scan view: %v", ErrScanRow, err)
	}

	return view, nil
}

// ListViews получает бронирования со связанными сущностями, сначала новые по дате создания
func (r *Repository) ListViews(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(viewSelect(), "b.", filter).
		OrderBy("b.created_at DESC", "b.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListViews - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]*domain.BookingView, 0)
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListViews - scan row: %v", ErrScanRow, err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListViews - rows error: %v", ErrScanRow, err)
	}

	return views, nil
}

func scanView(row rowScanner) (*domain.BookingView, error) {
	var (
		userID, businessID, productID, serviceID  sql.NullInt64
		userName, userEmail                       sql.NullString
		bizName, bizAddress, bizContact, bizType  sql.NullString
		bizTotalTables                            sql.NullInt32
		productName, serviceName, serviceDuration sql.NullString
		productPrice, servicePrice                sql.NullFloat64
	)

	booking, err := scanBooking(row,
		&userID, &userName, &userEmail,
		&businessID, &bizName, &bizAddress, &bizContact, &bizTotalTables, &bizType,
		&productID, &productName, &productPrice,
		&serviceID, &serviceName, &servicePrice, &serviceDuration,
	)
	if err != nil {
		return nil, err
	}

	view := &domain.BookingView{Booking: *booking}

	if userID.Valid {
		view.User = &domain.UserRef{
			ID:    userID.Int64,
			Name:  userName.String,
			Email: userEmail.String,
		}
	}

	if businessID.Valid {
		view.Business = &domain.BusinessRef{
			ID:          businessID.Int64,
			Name:        bizName.String,
			Address:     bizAddress.String,
			Contact:     bizContact.String,
			TotalTables: int(bizTotalTables.Int32),
			Type:        domain.BookingType(bizType.String),
		}
	}

	if productID.Valid {
		view.Product = &domain.ItemRef{
			ID:    productID.Int64,
			Name:  productName.String,
			Price: nullFloat(productPrice),
		}
	}

	if serviceID.Valid {
		view.Service = &domain.ItemRef{
			ID:    serviceID.Int64,
			Name:  serviceName.String,
			Price: nullFloat(servicePrice),
		}
		if serviceDuration.Valid {
			view.Service.Duration = &serviceDuration.String
		}
	}

	return view, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
