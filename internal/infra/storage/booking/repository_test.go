package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	"github.com/m04kA/LocalBiz-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LocalBiz-BookingService/pkg/ptr"
	"github.com/m04kA/LocalBiz-BookingService/pkg/txmanager"
)

func newMockRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

func bookingRow(id int64, bookingType domain.BookingType, status domain.BookingStatus, tables int) []driver.Value {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, int64(7), int64(1), string(bookingType),
		nil, nil, "",
		int64(tables), date, "19:00",
		nil, nil, "",
		string(status), now, now,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO bookings .* RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(context.Background(), &domain.Booking{
		UserID:      7,
		BusinessID:  1,
		Type:        domain.BookingTypeTable,
		TableCount:  ptr.Ptr(4),
		BookingDate: &date,
		BookingTime: "19:00",
		Status:      domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(bookingRow(5, domain.BookingTypeTable, domain.StatusPending, 3)...))

	booking, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), booking.ID)
	assert.Equal(t, domain.BookingTypeTable, booking.Type)
	assert.Equal(t, 3, booking.Tables())
	assert.Nil(t, booking.ProductID)
	require.NotNil(t, booking.BookingDate)
	assert.Equal(t, "19:00", booking.BookingTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetWithFilter_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE business_id = \$1 AND type = \$2 AND status <> \$3 .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(bookingRow(1, domain.BookingTypeTable, domain.StatusPending, 4)...).
			AddRow(bookingRow(2, domain.BookingTypeTable, domain.StatusDone, 2)...))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	tableType := domain.BookingTypeTable
	bookings, err := repo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessID:       ptr.Ptr(int64(1)),
		Type:             &tableType,
		BookingTime:      ptr.Ptr("19:00"),
		ExcludeCancelled: true,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithFilter_NoLockInReadOnlyTransaction(t *testing.T) {
	repo, db, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings WHERE business_id = \$1 ORDER BY created_at DESC, id DESC$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))
	mock.ExpectCommit()

	err := txmanager.NewTransactionManager(db).DoReadOnly(context.Background(), func(ctx context.Context) error {
		_, err := repo.GetWithFilter(ctx, domain.BookingsFilter{BusinessID: ptr.Ptr(int64(1))})
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithFilter_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE user_id = \$1 ORDER BY created_at DESC, id DESC$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{UserID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CancelOwnPending(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "cancelled", rowsAffected: 1},
		{name: "foreign or not pending", rowsAffected: 0, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newMockRepository(t)

			mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3 AND user_id = \$4`).
				WithArgs("cancelled", int64(5), "pending", int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.CancelOwnPending(context.Background(), 5, 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateStatusFrom_Conflict(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("done", int64(5), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusFrom(context.Background(), 5, domain.StatusPending, domain.StatusDone)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_CountByType(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT type, COUNT\(\*\) FROM bookings GROUP BY type`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).
			AddRow("table", int64(3)).
			AddRow("order", int64(5)))

	counts, err := repo.CountByType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[domain.BookingTypeTable])
	assert.Equal(t, int64(5), counts[domain.BookingTypeOrder])
	assert.Equal(t, int64(0), counts[domain.BookingTypeAppointment])
}

func TestRepository_GetViewByID_ResolvesReferences(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	columns := append(append([]string{}, bookingColumns...), viewColumns...)
	row := append(bookingRow(5, domain.BookingTypeTable, domain.StatusDone, 2),
		int64(7), "Jane", "jane@example.com",
		int64(1), "Business A", "Main st. 1", "+100", int64(10), "table",
		nil, nil, nil,
		nil, nil, nil, nil,
	)

	mock.ExpectQuery(`SELECT .* FROM bookings b LEFT JOIN users u .* WHERE b.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	view, err := repo.GetViewByID(context.Background(), 5)
	require.NoError(t, err)

	require.NotNil(t, view.User)
	assert.Equal(t, "Jane", view.User.Name)
	require.NotNil(t, view.Business)
	assert.Equal(t, 10, view.Business.TotalTables)
	assert.Equal(t, domain.BookingTypeTable, view.Business.Type)
	assert.Nil(t, view.Product)
	assert.Nil(t, view.Service)
	assert.Equal(t, domain.StatusConfirmed, view.Booking.DisplayStatus())
}

func TestRepository_ListViews_OrphanedBusiness(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	columns := append(append([]string{}, bookingColumns...), viewColumns...)
	row := append(bookingRow(9, domain.BookingTypeTable, domain.StatusPending, 1),
		int64(7), "Jane", "jane@example.com",
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
	)

	mock.ExpectQuery(`SELECT .* FROM bookings b .* ORDER BY b.created_at DESC, b.id DESC`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	views, err := repo.ListViews(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Business)
	assert.NotNil(t, views[0].User)
}
