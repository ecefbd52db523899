// Package memory - хранилище в памяти процесса для локального запуска (driver = "memory") и тестов.
// Возвращает те же ошибки, что и репозитории PostgreSQL, поэтому сервисы не отличают хранилища.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
)

// Store хранилище всех сущностей
type Store struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	businesses map[int64]domain.Business
	products   map[int64]domain.Product
	services   map[int64]domain.Service
	bookings   map[int64]domain.Booking

	lastIDs map[string]int64
	now     func() time.Time

	// txMu сериализует транзакции TxManager, mu защищает только данные
	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		businesses: make(map[int64]domain.Business),
		products:   make(map[int64]domain.Product),
		services:   make(map[int64]domain.Service),
		bookings:   make(map[int64]domain.Booking),
		lastIDs:    make(map[string]int64),
		now:        time.Now,
	}
}

// nextID выдает следующий ID; явно заданный ID сдвигает последовательность
func (s *Store) nextID(entity string, explicit int64) int64 {
	if explicit != 0 {
		if explicit > s.lastIDs[entity] {
			s.lastIDs[entity] = explicit
		}
		return explicit
	}
	s.lastIDs[entity]++
	return s.lastIDs[entity]
}

// AddUser добавляет пользователя, ID назначается, если не задан
func (s *Store) AddUser(user domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID("users", user.ID)
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	s.users[user.ID] = user
	return user
}

// AddBusiness добавляет бизнес, ID назначается, если не задан
func (s *Store) AddBusiness(business domain.Business) domain.Business {
	s.mu.Lock()
	defer s.mu.Unlock()

	business.ID = s.nextID("businesses", business.ID)
	if business.TotalTables < domain.MinTotalTables {
		business.TotalTables = domain.DefaultTotalTables
	}
	s.businesses[business.ID] = business
	return business
}

// AddProduct добавляет товар, ID назначается, если не задан
func (s *Store) AddProduct(product domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID("products", product.ID)
	if product.Kind == "" {
		product.Kind = domain.ProductKindProduct
	}
	s.products[product.ID] = product
	return product
}

// AddService добавляет услугу, ID назначается, если не задан
func (s *Store) AddService(service domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	service.ID = s.nextID("services", service.ID)
	s.services[service.ID] = service
	return service
}

// DeleteBusiness удаляет бизнес; бронирования остаются с висячей ссылкой
func (s *Store) DeleteBusiness(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.businesses, id)
}

// DeleteProduct удаляет товар; бронирования остаются с висячей ссылкой
func (s *Store) DeleteProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// ============================================================
// Каталог
// ============================================================

func (s *Store) GetBusinessByID(_ context.Context, id int64) (*domain.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	business, ok := s.businesses[id]
	if !ok {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	return &business, nil
}

func (s *Store) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, catalogRepo.ErrProductNotFound
	}
	return &product, nil
}

func (s *Store) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &service, nil
}

func (s *Store) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, catalogRepo.ErrUserNotFound
	}
	return &user, nil
}

// ============================================================
// Бронирования
// ============================================================

func (s *Store) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	booking.ID = s.nextID("bookings", 0)
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = *booking

	return booking, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &booking, nil
}

func (s *Store) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range s.sortedBookings() {
		if matches(booking, filter) {
			b := booking
			result = append(result, &b)
		}
	}
	return result, nil
}

func (s *Store) GetViewByID(_ context.Context, id int64) (*domain.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.view(booking), nil
}

func (s *Store) ListViews(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BookingView, 0)
	for _, booking := range s.sortedBookings() {
		if matches(booking, filter) {
			result = append(result, s.view(booking))
		}
	}
	return result, nil
}

func (s *Store) CancelOwnPending(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok || booking.UserID != userID || !booking.CanBeCancelledByUser() {
		return bookingRepo.ErrBookingNotFound
	}

	booking.Status = domain.StatusCancelled
	booking.UpdatedAt = s.now()
	s.bookings[id] = booking
	return nil
}

func (s *Store) UpdateStatusFrom(_ context.Context, id int64, from, to domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok || booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}

	booking.Status = to
	booking.UpdatedAt = s.now()
	s.bookings[id] = booking
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *Store) CountByType(_ context.Context) (map[domain.BookingType]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.BookingType]int64)
	for _, booking := range s.bookings {
		counts[booking.Type]++
	}
	return counts, nil
}

// sortedBookings возвращает бронирования, сначала новые по дате создания
func (s *Store) sortedBookings() []domain.Booking {
	list := make([]domain.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		list = append(list, booking)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

// view собирает проекцию; отсутствующие связанные сущности остаются пустыми
func (s *Store) view(booking domain.Booking) *domain.BookingView {
	view := &domain.BookingView{Booking: booking}

	if user, ok := s.users[booking.UserID]; ok {
		view.User = user.Ref()
	}
	if business, ok := s.businesses[booking.BusinessID]; ok {
		view.Business = business.Ref()
	}
	if booking.ProductID != nil {
		if product, ok := s.products[*booking.ProductID]; ok {
			view.Product = &domain.ItemRef{ID: product.ID, Name: product.Name, Price: product.Price}
		}
	}
	if booking.ServiceID != nil {
		switch booking.ServiceSource {
		case domain.ItemSourceService:
			if service, ok := s.services[*booking.ServiceID]; ok {
				duration := service.Duration
				view.Service = &domain.ItemRef{ID: service.ID, Name: service.Name, Price: service.Price, Duration: &duration}
			}
		case domain.ItemSourceLegacyProduct:
			if product, ok := s.products[*booking.ServiceID]; ok {
				view.Service = &domain.ItemRef{ID: product.ID, Name: product.Name, Price: product.Price}
			}
		}
	}

	return view
}

func matches(b domain.Booking, f domain.BookingsFilter) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.BusinessID != nil && b.BusinessID != *f.BusinessID {
		return false
	}
	if f.ServiceID != nil && (b.ServiceID == nil || *b.ServiceID != *f.ServiceID) {
		return false
	}
	if f.ServiceSource != nil && b.ServiceSource != *f.ServiceSource {
		return false
	}
	if f.Type != nil && b.Type != *f.Type {
		return false
	}
	if f.Status != nil {
		if b.Status != *f.Status {
			return false
		}
	} else if f.ExcludeCancelled && !b.IsActive() {
		return false
	}

	if f.ExactDate != nil || f.DateFrom != nil || f.DateTo != nil {
		if b.BookingDate == nil {
			return false
		}
		date := *b.BookingDate
		if f.ExactDate != nil && !date.Equal(*f.ExactDate) {
			return false
		}
		if f.DateFrom != nil && date.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && date.After(*f.DateTo) {
			return false
		}
	}

	if f.BookingTime != nil && b.BookingTime != *f.BookingTime {
		return false
	}

	return true
}
