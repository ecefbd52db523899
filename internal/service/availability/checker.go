// Package availability проверяет свободные столы и слоты записи.
//
// Вместимость столов считается по календарному дню (в часовом поясе сервиса) и точной метке времени,
// занятость записи - по точному моменту. Обе проверки только читают данные: атомарность проверки
// и вставки обеспечивает транзакция вызывающего кода.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Checker сервис проверки доступности
type Checker struct {
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewChecker создает новый экземпляр сервиса проверки доступности
// location - часовой пояс, по которому определяются границы дня
func NewChecker(bookingRepo BookingRepository, location *time.Location, logger Logger) *Checker {
	if location == nil {
		location = time.UTC
	}
	return &Checker{
		bookingRepo: bookingRepo,
		location:    location,
		logger:      logger,
	}
}

// TableAvailability считает занятые и свободные столы бизнеса на день и время
func (c *Checker) TableAvailability(ctx context.Context, business *domain.Business, date time.Time, bookingTime string) (*domain.TableAvailability, error) {
	start, end := domain.DayBounds(date, c.location)
	tableType := domain.BookingTypeTable

	bookings, err := c.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessID:       &business.ID,
		Type:             &tableType,
		DateFrom:         &start,
		DateTo:           &end,
		BookingTime:      &bookingTime,
		ExcludeCancelled: true,
	})
	if err != nil {
		c.logger.Error("TableAvailability: failed to get bookings for business=%d: %v", business.ID, err)
		return nil, fmt.Errorf("%w: TableAvailability - repository error: %w", ErrInternal, err)
	}

	booked := 0
	for _, b := range bookings {
		booked += b.Tables()
	}

	return &domain.TableAvailability{
		BusinessID:   business.ID,
		Date:         start,
		BookingTime:  bookingTime,
		TotalTables:  business.TotalTables,
		BookedTables: booked,
	}, nil
}

// CheckTableCapacity проверяет, что requested столов помещаются в вместимость бизнеса
func (c *Checker) CheckTableCapacity(ctx context.Context, business *domain.Business, date time.Time, bookingTime string, requested int) (*domain.TableAvailability, error) {
	availability, err := c.TableAvailability(ctx, business, date, bookingTime)
	if err != nil {
		return nil, err
	}

	if !availability.Fits(requested) {
		c.logger.Warn("CheckTableCapacity: business=%d date=%s time=%s booked=%d requested=%d total=%d",
			business.ID, availability.Date.Format(domain.DateFormat), bookingTime,
			availability.BookedTables, requested, availability.TotalTables)
		return availability, fmt.Errorf("%w: only %d of %d tables available",
			ErrCapacityExceeded, availability.AvailableTables(), availability.TotalTables)
	}

	return availability, nil
}

// CheckAppointmentSlot проверяет, что на услугу нет активной записи на тот же момент и время
func (c *Checker) CheckAppointmentSlot(ctx context.Context, businessID int64, item *domain.BookableItem, date time.Time, bookingTime string) error {
	appointmentType := domain.BookingTypeAppointment

	bookings, err := c.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		BusinessID:       &businessID,
		ServiceID:        &item.ID,
		ServiceSource:    &item.Source,
		Type:             &appointmentType,
		ExactDate:        &date,
		BookingTime:      &bookingTime,
		ExcludeCancelled: true,
	})
	if err != nil {
		c.logger.Error("CheckAppointmentSlot: failed to get bookings for business=%d service=%d: %v",
			businessID, item.ID, err)
		return fmt.Errorf("%w: CheckAppointmentSlot - repository error: %w", ErrInternal, err)
	}

	if len(bookings) > 0 {
		c.logger.Warn("CheckAppointmentSlot: business=%d service=%d slot %s %s taken by booking id=%d",
			businessID, item.ID, date.Format(time.RFC3339), bookingTime, bookings[0].ID)
		return ErrSlotTaken
	}

	return nil
}
