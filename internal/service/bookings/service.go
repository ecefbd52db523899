package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/bookings/models"
	"github.com/m04kA/LocalBiz-BookingService/pkg/mq"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
// publisher и metrics могут быть nil
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, для чужих возвращается ErrBookingNotFound
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	view, err := s.bookingRepo.GetViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if view.Booking.UserID != userID {
		s.logger.Warn("GetByID: user=%d is not the owner of booking id=%d", userID, id)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainView(view), nil
}

// GetUserBookings получает бронирования пользователя, сначала новые
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	views, err := s.bookingRepo.ListViews(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(views), req.UserID)
	return models.FromDomainViewList(views), nil
}

// GetAllBookings получает все бронирования для администратора, сначала новые
// Опционально фильтрует по типу бронирования
func (s *Service) GetAllBookings(ctx context.Context, req *models.GetAllBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAllBookings: fetching bookings, type=%v", req.Type)

	var filter domain.BookingsFilter
	if req.Type != nil && *req.Type != "" {
		bookingType, ok := domain.ParseBookingType(*req.Type)
		if !ok {
			s.logger.Warn("GetAllBookings: invalid type=%s", *req.Type)
			return nil, fmt.Errorf("%w: invalid type", ErrInvalidInput)
		}
		filter.Type = &bookingType
	}

	views, err := s.bookingRepo.ListViews(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBookings: successfully fetched %d bookings", len(views))
	return models.FromDomainViewList(views), nil
}

// CancelOwn отменяет бронирование его владельцем
// Отмена выполняется одним условным UPDATE: бронирование должно принадлежать
// пользователю и находиться в статусе pending. Иначе ErrNotFoundOrUnauthorized,
// без уточнения причины.
func (s *Service) CancelOwn(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelOwn: cancelling booking id=%d by user=%d", bookingID, userID)

	if err := s.bookingRepo.CancelOwnPending(ctx, bookingID, userID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelOwn: booking id=%d is not cancellable by user=%d", bookingID, userID)
			return nil, ErrNotFoundOrUnauthorized
		}
		s.logger.Error("CancelOwn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CancelOwn - repository error: %v", ErrInternal, err)
	}

	s.recordTransition(domain.StatusPending, domain.StatusCancelled)

	view, err := s.loadView(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mq.KeyBookingStatusChanged, &view.Booking, domain.StatusPending)

	s.logger.Info("CancelOwn: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainView(view), nil
}

// UpdateStatus меняет статус бронирования
// Доступно только администраторам. Повторная установка текущего статуса ничего не меняет.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%q", bookingID, req.Status)

	// 1. Проверяем права доступа
	if !req.ActorIsAdmin {
		s.logger.Warn("UpdateStatus: access denied for booking id=%d", bookingID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем статус
	if _, ok := domain.ParseBookingStatus(req.Status); !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// 3. Получаем бронирование
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// 4. Набор допустимых статусов зависит от типа бронирования
	target, ok := domain.ParseStatusFor(booking.Type, req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: status=%q is not allowed for %s booking id=%d", req.Status, booking.Type, bookingID)
		return nil, fmt.Errorf("%w: %q is not allowed for %s bookings", ErrInvalidStatus, req.Status, booking.Type)
	}

	// 5. Тот же статус - ничего не делаем
	if booking.Status == target {
		s.logger.Info("UpdateStatus: booking id=%d already has status=%s", bookingID, target)
		return s.response(ctx, bookingID)
	}

	// 6. Проверяем допустимость перехода
	if !booking.Status.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, target, bookingID)
		return nil, fmt.Errorf("%w: cannot change %s to %s", ErrInvalidStatus, booking.Status, target)
	}

	// 7. Меняем статус, только если его никто не изменил после чтения
	previous := booking.Status
	if err := s.bookingRepo.UpdateStatusFrom(ctx, bookingID, previous, target); err != nil {
		if !errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return s.resolveConflict(ctx, bookingID, target)
	}

	s.recordTransition(previous, target)

	view, err := s.loadView(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mq.KeyBookingStatusChanged, &view.Booking, previous)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d from %s to %s", bookingID, previous, target)
	return models.FromDomainView(view), nil
}

// Delete удаляет бронирование (панель администратора)
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found during delete", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, mq.KeyBookingDeleted, booking, "")

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// GetStats возвращает счетчики бронирований для панели администратора
func (s *Service) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	counts, err := s.bookingRepo.CountByType(ctx)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	stats := models.FromTypeCounts(counts)
	s.logger.Info("GetStats: total=%d, table=%d", stats.TotalBookings, stats.TableBookings)
	return stats, nil
}

// Вспомогательные методы

// resolveConflict обрабатывает параллельное изменение статуса.
// Если другой запрос уже установил нужный статус, результат тот же, что и при повторе.
func (s *Service) resolveConflict(ctx context.Context, bookingID int64, target domain.BookingStatus) (*models.BookingResponse, error) {
	current, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if current.Status == target {
		s.logger.Info("UpdateStatus: booking id=%d was concurrently set to %s", bookingID, target)
		return s.response(ctx, bookingID)
	}

	s.logger.Warn("UpdateStatus: booking id=%d concurrently changed to %s", bookingID, current.Status)
	return nil, fmt.Errorf("%w: cannot change %s to %s", ErrInvalidStatus, current.Status, target)
}

func (s *Service) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) loadView(ctx context.Context, bookingID int64) (*domain.BookingView, error) {
	view, err := s.bookingRepo.GetViewByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("failed to load projection for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: projection error: %v", ErrInternal, err)
	}
	return view, nil
}

func (s *Service) response(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	view, err := s.loadView(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainView(view), nil
}

func (s *Service) recordTransition(from, to domain.BookingStatus) {
	if s.metrics != nil {
		s.metrics.IncStatusTransition(from.String(), to.String())
	}
}

// publish отправляет событие, ошибка брокера только логируется
func (s *Service) publish(ctx context.Context, key string, booking *domain.Booking, previous domain.BookingStatus) {
	if s.publisher == nil {
		return
	}

	event := domain.NewBookingEvent(booking, s.now())
	event.PreviousStatus = previous
	if err := s.publisher.PublishJSON(ctx, key, event); err != nil {
		s.logger.Warn("failed to publish %s for booking id=%d: %v", key, booking.ID, err)
	}
}
