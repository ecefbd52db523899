package get_table_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения свободных столов на день и время
type UseCase struct {
	catalogRepo CatalogRepository
	checker     AvailabilityChecker
	txManager   TransactionManager
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		catalogRepo: catalogRepo,
		checker:     checker,
		txManager:   txManager,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных столов
// Результат информационный: при создании бронирования вместимость проверяется заново
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTableAvailability: business=%d, date=%q, time=%q", req.BusinessID, req.Date, req.BookingTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTableAvailability: validation failed: %v", err)
		return nil, err
	}

	date, err := domain.ParseBookingDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetTableAvailability: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	// 2. Бизнес и занятость читаются из одного снимка
	var (
		business     *domain.Business
		availability *domain.TableAvailability
	)

	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		business, err = uc.catalogRepo.GetBusinessByID(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}

		// 3. Столы есть только у бизнеса типа table
		if business.Type != domain.BookingTypeTable {
			return fmt.Errorf("%w: business has type %s", ErrNotTableBusiness, business.Type)
		}

		// 4. Считаем занятость
		availability, err = uc.checker.TableAvailability(txCtx, business, date, req.BookingTime)
		if err != nil {
			return fmt.Errorf("%w: failed to count tables: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBusinessNotFound), errors.Is(err, ErrNotTableBusiness):
			uc.logger.Warn("GetTableAvailability: business id=%d: %v", req.BusinessID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("GetTableAvailability: business id=%d: %v", req.BusinessID, err)
			return nil, err
		default:
			uc.logger.Error("GetTableAvailability: read transaction failed for business id=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: read transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("GetTableAvailability: business=%d %d/%d tables booked",
		business.ID, availability.BookedTables, availability.TotalTables)

	return &Response{
		Business:     business,
		Availability: availability,
	}, nil
}
