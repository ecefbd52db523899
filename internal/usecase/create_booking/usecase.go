package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/LocalBiz-BookingService/internal/service/availability"
	catalogService "github.com/m04kA/LocalBiz-BookingService/internal/service/catalog"
	"github.com/m04kA/LocalBiz-BookingService/pkg/mq"
	"github.com/m04kA/LocalBiz-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	resolver     ServiceResolver
	checker      AvailabilityChecker
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором интерпретируются даты без смещения
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	resolver ServiceResolver,
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		resolver:     resolver,
		checker:      checker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка для столов и записей выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	typeLabel := "unknown"
	if t, ok := domain.ParseBookingType(req.Type); ok {
		typeLabel = t.String()
	}

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.IncBookingRejected(typeLabel, rejectionReason(err))
		return nil, err
	}

	uc.metrics.IncBookingAdmitted(typeLabel)
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация общих полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%d, business=%d, type=%s, date=%q, time=%q",
		req.Requester.ID, req.BusinessID, req.Type, req.BookingDate, req.BookingTime)

	// 2. Получаем бизнес
	business, err := uc.catalogRepo.GetBusinessByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Тип бронирования должен совпадать с типом бизнеса
	if !business.Accepts(req.Type) {
		uc.logger.Warn("CreateBooking: business id=%d supports %s, requested %s", business.ID, business.Type, req.Type)
		return nil, &TypeMismatchError{Requested: req.Type, Supported: business.Type}
	}

	bookingType, ok := domain.ParseBookingType(string(business.Type))
	if !ok {
		uc.logger.Warn("CreateBooking: business id=%d has unsupported type %q", business.ID, business.Type)
		return nil, ErrInvalidBookingType
	}

	// 4. Разбираем дату, если она указана
	date, err := parseDate(req.BookingDate, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Проверяем поля конкретного типа
	p, err := buildPayload(bookingType, req, date)
	if err != nil {
		uc.logger.Warn("CreateBooking: %s payload rejected: %v", bookingType, err)
		return nil, err
	}

	booking := &domain.Booking{
		UserID:     req.Requester.ID,
		BusinessID: business.ID,
		Type:       bookingType,
		Note:       req.Note,
		Status:     domain.StatusPending,
	}

	// 6. Допуск бронирования по типу
	resp := &Response{}
	var created *domain.Booking

	switch p := p.(type) {
	case orderPayload:
		created, err = uc.admitOrder(ctx, booking, p)
	case tablePayload:
		created, resp.Availability, err = uc.admitTable(ctx, business, booking, p)
	case appointmentPayload:
		created, err = uc.admitAppointment(ctx, business, booking, p)
	default:
		err = ErrInvalidBookingType
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d type=%s", created.ID, created.Type)

	// 7. Проекция для ответа
	resp.Booking = uc.project(ctx, created, business, req.Requester)

	// 8. Событие (ошибка публикации не отменяет бронирование)
	uc.publish(ctx, created)

	return resp, nil
}

// admitOrder заказ товара
func (uc *UseCase) admitOrder(ctx context.Context, booking *domain.Booking, p orderPayload) (*domain.Booking, error) {
	product, err := uc.catalogRepo.GetProductByID(ctx, p.productID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProductNotFound) {
			uc.logger.Warn("CreateBooking: product id=%d not found", p.productID)
			return nil, ErrProductNotFound
		}
		uc.logger.Error("CreateBooking: failed to get product id=%d: %v", p.productID, err)
		return nil, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
	}

	// Товар вида service нельзя заказать
	if product.Kind != domain.ProductKindProduct {
		uc.logger.Warn("CreateBooking: product id=%d has kind=%s, order rejected", product.ID, product.Kind)
		return nil, ErrWrongItemKind
	}

	if p.deliveryAddress == "" || p.deliveryContact == "" {
		uc.logger.Warn("CreateBooking: delivery info missing for product id=%d", product.ID)
		return nil, ErrMissingDeliveryInfo
	}

	booking.ProductID = &product.ID
	booking.DeliveryAddress = &p.deliveryAddress
	booking.DeliveryContact = &p.deliveryContact

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create order: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	return created, nil
}

// admitTable бронирование столов: проверка вместимости и вставка атомарны
func (uc *UseCase) admitTable(ctx context.Context, business *domain.Business, booking *domain.Booking, p tablePayload) (*domain.Booking, *domain.TableAvailability, error) {
	var (
		created *domain.Booking
		slot    *domain.TableAvailability
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Занятость считается с блокировкой строк слота
		availabilityInfo, err := uc.checker.CheckTableCapacity(txCtx, business, p.date, p.bookingTime, p.tableCount)
		if err != nil {
			if errors.Is(err, availability.ErrCapacityExceeded) {
				return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
			}
			return fmt.Errorf("%w: failed to check table capacity: %w", ErrInternal, err)
		}

		booking.TableCount = &p.tableCount
		booking.BookingDate = &p.date
		booking.BookingTime = p.bookingTime

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		slot = availabilityInfo
		return nil
	})

	if err != nil {
		// Конкурентная транзакция заняла те же столы
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for business=%d time=%s", business.ID, p.bookingTime)
			return nil, nil, fmt.Errorf("%w: concurrent booking for the same slot", ErrCapacityExceeded)
		}
		if errors.Is(err, ErrCapacityExceeded) {
			uc.logger.Warn("CreateBooking: %v", err)
		} else {
			uc.logger.Error("CreateBooking: table admission failed: %v", err)
		}
		return nil, nil, err
	}

	return created, slot, nil
}

// admitAppointment запись на услугу: проверка слота и вставка атомарны
func (uc *UseCase) admitAppointment(ctx context.Context, business *domain.Business, booking *domain.Booking, p appointmentPayload) (*domain.Booking, error) {
	item, err := uc.resolver.ResolveService(ctx, p.serviceID)
	if err != nil {
		if errors.Is(err, catalogService.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve service id=%d: %v", p.serviceID, err)
		return nil, fmt.Errorf("%w: failed to resolve service: %v", ErrInternal, err)
	}

	if item.BusinessID != business.ID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to business=%d, requested business=%d",
			item.ID, item.BusinessID, business.ID)
		return nil, ErrServiceBusinessMismatch
	}

	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checker.CheckAppointmentSlot(txCtx, business.ID, item, p.date, p.bookingTime); err != nil {
			if errors.Is(err, availability.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}

		booking.ServiceID = &item.ID
		booking.ServiceSource = item.Source
		booking.BookingDate = &p.date
		booking.BookingTime = p.bookingTime

		var err error
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for service=%d time=%s", item.ID, p.bookingTime)
			return nil, ErrSlotTaken
		}
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot taken for service=%d", item.ID)
		} else {
			uc.logger.Error("CreateBooking: appointment admission failed: %v", err)
		}
		return nil, err
	}

	return created, nil
}

// project возвращает бронирование со связанными сущностями
// Если проекцию получить не удалось, бронирование уже создано - отдаем то, что известно
func (uc *UseCase) project(ctx context.Context, created *domain.Booking, business *domain.Business, requester *domain.User) *domain.BookingView {
	view, err := uc.bookingRepo.GetViewByID(ctx, created.ID)
	if err == nil {
		return view
	}

	uc.logger.Warn("CreateBooking: failed to load projection for booking id=%d: %v", created.ID, err)
	return &domain.BookingView{
		Booking:  *created,
		User:     requester.Ref(),
		Business: business.Ref(),
	}
}

func (uc *UseCase) publish(ctx context.Context, created *domain.Booking) {
	if uc.publisher == nil {
		return
	}

	event := domain.NewBookingEvent(created, uc.timeProvider.Now())
	if err := uc.publisher.PublishJSON(ctx, mq.KeyBookingCreated, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v",
			mq.KeyBookingCreated, created.ID, err)
	}
}
