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

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"user_id",
	"business_id",
	"type",
	"product_id",
	"service_id",
	"service_source",
	"table_count",
	"booking_date",
	"booking_time",
	"delivery_address",
	"delivery_contact",
	"note",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание вместе с проверкой доступности слота должно выполняться в транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"user_id",
			"business_id",
			"type",
			"product_id",
			"service_id",
			"service_source",
			"table_count",
			"booking_date",
			"booking_time",
			"delivery_address",
			"delivery_contact",
			"note",
			"status",
		).
		Values(
			booking.UserID,
			booking.BusinessID,
			booking.Type,
			booking.ProductID,
			booking.ServiceID,
			booking.ServiceSource,
			booking.TableCount,
			booking.BookingDate,
			booking.BookingTime,
			booking.DeliveryAddress,
			booking.DeliveryContact,
			booking.Note,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// %w для исходной ошибки: txmanager распознает конфликт сериализации
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования по фильтру
//
// Примеры использования:
//
// Занятость столов на день и время:
//
//	filter := domain.BookingsFilter{BusinessID: &id, Type: &tableType, DateFrom: &start, DateTo: &end, BookingTime: &bookingTime, ExcludeCancelled: true}
//
// Занятость слота записи:
//
//	filter := domain.BookingsFilter{BusinessID: &id, ServiceID: &serviceID, ExactDate: &date, BookingTime: &bookingTime, ExcludeCancelled: true}
//
// Внутри транзакции на запись строки блокируются (FOR UPDATE), чтобы проверка и вставка были атомарны.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(bookingColumns...).From(bookingsTable),
		"",
		filter,
	).OrderBy("created_at DESC", "id DESC")

	if dbmetrics.IsInTransaction(ctx) && !dbmetrics.IsReadOnly(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CancelOwnPending отменяет бронирование, только если оно принадлежит пользователю и находится в статусе pending
// Проверка и запись выполняются одним UPDATE. Если строк не затронуто - ErrBookingNotFound.
func (r *Repository) CancelOwnPending(ctx context.Context, id, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"user_id": userID,
			"status":  domain.StatusPending,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelOwnPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelOwnPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelOwnPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatusFrom меняет статус, только если текущий статус равен from (compare-and-swap)
// Если статус успел измениться - ErrStatusConflict
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, доступно только администратору)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CountByType возвращает количество бронирований каждого типа
func (r *Repository) CountByType(ctx context.Context) (map[domain.BookingType]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("type", "COUNT(*)").
		From(bookingsTable).
		GroupBy("type").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingType]int64)
	for rows.Next() {
		var (
			bookingType domain.BookingType
			count       int64
		)
		if err := rows.Scan(&bookingType, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByType - scan row: %v", ErrScanRow, err)
		}
		counts[bookingType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByType - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// applyFilter добавляет условия фильтра; prefix - алиас таблицы бронирований ("" или "b.")
func applyFilter(builder squirrel.SelectBuilder, prefix string, filter domain.BookingsFilter) squirrel.SelectBuilder {
	col := func(name string) string { return prefix + name }

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{col("user_id"): *filter.UserID})
	}
	if filter.BusinessID != nil {
		builder = builder.Where(squirrel.Eq{col("business_id"): *filter.BusinessID})
	}
	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{col("service_id"): *filter.ServiceID})
	}
	if filter.ServiceSource != nil {
		builder = builder.Where(squirrel.Eq{col("service_source"): *filter.ServiceSource})
	}
	if filter.Type != nil {
		builder = builder.Where(squirrel.Eq{col("type"): *filter.Type})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{col("status"): *filter.Status})
	} else if filter.ExcludeCancelled {
		builder = builder.Where(squirrel.NotEq{col("status"): domain.StatusCancelled})
	}

	// Таблицы: весь календарный день; записи: точное совпадение момента
	if filter.ExactDate != nil {
		builder = builder.Where(squirrel.Eq{col("booking_date"): *filter.ExactDate})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{col("booking_date"): *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{col("booking_date"): *filter.DateTo})
	}

	if filter.BookingTime != nil {
		builder = builder.Where(squirrel.Eq{col("booking_time"): *filter.BookingTime})
	}

	return builder
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует колонки bookingColumns; trailing - дополнительные приемники после них
func scanBooking(row rowScanner, trailing ...interface{}) (*domain.Booking, error) {
	var (
		booking         domain.Booking
		productID       sql.NullInt64
		serviceID       sql.NullInt64
		tableCount      sql.NullInt32
		bookingDate     sql.NullTime
		deliveryAddress sql.NullString
		deliveryContact sql.NullString
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	dest := []interface{}{
		&booking.ID,
		&booking.UserID,
		&booking.BusinessID,
		&booking.Type,
		&productID,
		&serviceID,
		&booking.ServiceSource,
		&tableCount,
		&bookingDate,
		&booking.BookingTime,
		&deliveryAddress,
		&deliveryContact,
		&booking.Note,
		&booking.Status,
		&createdAt,
		&updatedAt,
	}
	dest = append(dest, trailing...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if productID.Valid {
		booking.ProductID = &productID.Int64
	}
	if serviceID.Valid {
		booking.ServiceID = &serviceID.Int64
	}
	if tableCount.Valid {
		count := int(tableCount.Int32)
		booking.TableCount = &count
	}
	if bookingDate.Valid {
		booking.BookingDate = &bookingDate.Time
	}
	if deliveryAddress.Valid {
		booking.DeliveryAddress = &deliveryAddress.String
	}
	if deliveryContact.Valid {
		booking.DeliveryContact = &deliveryContact.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
