package create_booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// validateRequest проверяет общие поля запроса
func validateRequest(req *Request) error {
	if req.Requester == nil {
		return ErrUnauthorized
	}

	if strings.TrimSpace(req.Type) == "" {
		return ErrInvalidBookingType
	}

	if utf8.RuneCountInString(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// parseDate разбирает дату бронирования, если она указана
// Пустая дата - не ошибка: обязательность проверяется для конкретного типа
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	date, err := domain.ParseBookingDate(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return &date, nil
}

// parseTableCount разбирает количество столов: положительное целое число не больше MaxInt32
// Допускается запись вида "2" или "2.0"
func parseTableCount(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n <= 0 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// buildPayload проверяет поля, специфичные для типа, которые не требуют обращения к хранилищу
func buildPayload(bookingType domain.BookingType, req *Request, date *time.Time) (payload, error) {
	switch bookingType {
	case domain.BookingTypeOrder:
		if req.ProductID == nil {
			return nil, fmt.Errorf("%w: %w: productId is required", ErrProductNotFound, ErrInvalidInput)
		}
		return orderPayload{
			productID:       *req.ProductID,
			deliveryAddress: strings.TrimSpace(req.DeliveryAddress),
			deliveryContact: strings.TrimSpace(req.DeliveryContact),
		}, nil

	case domain.BookingTypeTable:
		tableCount, ok := parseTableCount(req.TableCount)
		if !ok || date == nil || req.BookingTime == "" {
			return nil, ErrMissingTableFields
		}
		return tablePayload{
			tableCount:  tableCount,
			date:        *date,
			bookingTime: req.BookingTime,
		}, nil

	case domain.BookingTypeAppointment:
		if date == nil || req.BookingTime == "" {
			return nil, ErrMissingAppointmentFields
		}
		if req.ServiceID == nil {
			return nil, fmt.Errorf("%w: %w: serviceId is required", ErrServiceNotFound, ErrInvalidInput)
		}
		return appointmentPayload{
			serviceID:   *req.ServiceID,
			date:        *date,
			bookingTime: req.BookingTime,
		}, nil

	default:
		return nil, ErrInvalidBookingType
	}
}
