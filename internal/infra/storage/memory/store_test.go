package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/LocalBiz-BookingService/pkg/ptr"
)

func TestStore_CatalogLookups(t *testing.T) {
	store := NewStore()
	business := store.AddBusiness(domain.Business{Name: "Business A", Type: domain.BookingTypeTable})
	product := store.AddProduct(domain.Product{BusinessID: business.ID, Name: "Coffee"})

	got, err := store.GetBusinessByID(context.Background(), business.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalTables, got.TotalTables)

	gotProduct, err := store.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductKindProduct, gotProduct.Kind)

	_, err = store.GetServiceByID(context.Background(), 100)
	assert.ErrorIs(t, err, catalogRepo.ErrServiceNotFound)
	_, err = store.GetUserByID(context.Background(), 100)
	assert.ErrorIs(t, err, catalogRepo.ErrUserNotFound)
}

func TestStore_BookingLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Create(ctx, &domain.Booking{UserID: 1, BusinessID: 1, Type: domain.BookingTypeOrder, Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	assert.ErrorIs(t, store.CancelOwnPending(ctx, created.ID, 2), bookingRepo.ErrBookingNotFound)
	require.NoError(t, store.CancelOwnPending(ctx, created.ID, 1))
	assert.ErrorIs(t, store.CancelOwnPending(ctx, created.ID, 1), bookingRepo.ErrBookingNotFound)

	assert.ErrorIs(t, store.UpdateStatusFrom(ctx, created.ID, domain.StatusPending, domain.StatusDone), bookingRepo.ErrStatusConflict)

	require.NoError(t, store.Delete(ctx, created.ID))
	_, err = store.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestStore_GetWithFilter_DayBucket(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	morning := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	for _, date := range []time.Time{morning, evening, nextDay} {
		d := date
		_, err := store.Create(ctx, &domain.Booking{
			BusinessID: 1, Type: domain.BookingTypeTable, TableCount: ptr.Ptr(2),
			BookingDate: &d, BookingTime: "19:00", Status: domain.StatusPending,
		})
		require.NoError(t, err)
	}

	start, end := domain.DayBounds(morning, time.UTC)
	bookings, err := store.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessID:       ptr.Ptr(int64(1)),
		DateFrom:         &start,
		DateTo:           &end,
		BookingTime:      ptr.Ptr("19:00"),
		ExcludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	bookings, err = store.GetWithFilter(ctx, domain.BookingsFilter{ExactDate: &evening})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestStore_ListViews_NewestFirstWithOrphans(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	user := store.AddUser(domain.User{Name: "Jane", Email: "jane@example.com"})
	business := store.AddBusiness(domain.Business{Name: "Shop", Type: domain.BookingTypeOrder})
	product := store.AddProduct(domain.Product{BusinessID: business.ID, Name: "Cake", Price: ptr.Ptr(10.0)})

	first, err := store.Create(ctx, &domain.Booking{UserID: user.ID, BusinessID: business.ID, Type: domain.BookingTypeOrder, ProductID: &product.ID, Status: domain.StatusPending})
	require.NoError(t, err)
	second, err := store.Create(ctx, &domain.Booking{UserID: user.ID, BusinessID: business.ID, Type: domain.BookingTypeOrder, ProductID: &product.ID, Status: domain.StatusPending})
	require.NoError(t, err)

	store.DeleteProduct(product.ID)

	views, err := store.ListViews(ctx, domain.BookingsFilter{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].Booking.ID)
	assert.Equal(t, first.ID, views[1].Booking.ID)
	assert.Nil(t, views[0].Product)
	require.NotNil(t, views[0].Business)
	assert.Equal(t, "Shop", views[0].Business.Name)
}

func TestStore_DeleteBusiness_KeepsBookings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	business := store.AddBusiness(domain.Business{Name: "Business A", Type: domain.BookingTypeTable, TotalTables: 2})
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	created, err := store.Create(ctx, &domain.Booking{
		UserID: 1, BusinessID: business.ID, Type: domain.BookingTypeTable, TableCount: ptr.Ptr(1),
		BookingDate: &date, BookingTime: "19:00", Status: domain.StatusPending,
	})
	require.NoError(t, err)

	store.DeleteBusiness(business.ID)

	_, err = store.GetBusinessByID(ctx, business.ID)
	assert.ErrorIs(t, err, catalogRepo.ErrBusinessNotFound)

	view, err := store.GetViewByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, business.ID, view.Booking.BusinessID)
	assert.Nil(t, view.Business)

	counts, err := store.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.BookingTypeTable])
}

func TestStore_GetWithFilter_ExcludesCancelled(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusDone, domain.StatusCancelled} {
		_, err := store.Create(ctx, &domain.Booking{
			BusinessID: 1, Type: domain.BookingTypeTable, TableCount: ptr.Ptr(1),
			BookingDate: &date, BookingTime: "19:00", Status: status,
		})
		require.NoError(t, err)
	}

	active, err := store.GetWithFilter(ctx, domain.BookingsFilter{BusinessID: ptr.Ptr(int64(1)), ExcludeCancelled: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, b := range active {
		assert.True(t, b.IsActive())
	}
}

func TestTxManager_SerializesTransactions(t *testing.T) {
	store := NewStore()
	txm := NewTxManager(store)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = txm.DoSerializable(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				// вложенный вызов не должен блокироваться
				_ = txm.Do(ctx, func(context.Context) error { return nil })

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestStore_LoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[users]]
id = 1
name = "Admin"
email = "admin@example.com"
role = "admin"

[[businesses]]
id = 10
name = "Coffee Corner"
type = "Table"
total_tables = 4

[[products]]
id = 3
business_id = 10
name = "Morning class"
kind = "service"
`), 0o600))

	store := NewStore()
	require.NoError(t, store.LoadSeedFile(path))

	user, err := store.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	business, err := store.GetBusinessByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingTypeTable, business.Type)
	assert.Equal(t, 4, business.TotalTables)

	// следующий бизнес без ID получает ID после максимального из seed
	next := store.AddBusiness(domain.Business{Name: "Next", Type: domain.BookingTypeOrder})
	assert.Equal(t, int64(11), next.ID)
}

func TestStore_LoadSeed_UnknownType(t *testing.T) {
	store := NewStore()
	err := store.LoadSeed(Seed{Businesses: []SeedBusiness{{ID: 1, Name: "X", Type: "delivery"}}})
	assert.Error(t, err)
}
