package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

var (
	// ErrUnauthorized возвращается, когда запрос выполнен без аутентифицированного пользователя
	ErrUnauthorized = errors.New("create_booking: unauthorized")

	// ErrInvalidBookingType возвращается, когда тип бронирования не указан или не поддерживается
	ErrInvalidBookingType = errors.New("create_booking: booking type is missing or unsupported")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrTypeMismatch возвращается, когда бизнес не принимает бронирования запрошенного типа
	ErrTypeMismatch = errors.New("create_booking: business does not support this booking type")

	// ErrInvalidDate возвращается, когда дату бронирования не удалось разобрать
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrProductNotFound возвращается, когда товар не найден или не указан
	ErrProductNotFound = errors.New("create_booking: product not found")

	// ErrWrongItemKind возвращается, когда для заказа указан товар вида service
	ErrWrongItemKind = errors.New("create_booking: invalid product for order")

	// ErrMissingDeliveryInfo возвращается, когда не указан адрес или контакт доставки
	ErrMissingDeliveryInfo = errors.New("create_booking: delivery address and contact are required")

	// ErrMissingTableFields возвращается, когда не указаны количество столов, дата или время
	ErrMissingTableFields = errors.New("create_booking: table count, date and time are required for table booking")

	// ErrCapacityExceeded возвращается, когда на выбранный слот не хватает столов
	ErrCapacityExceeded = errors.New("create_booking: not enough tables available")

	// ErrMissingAppointmentFields возвращается, когда не указаны дата или время записи
	ErrMissingAppointmentFields = errors.New("create_booking: date and time are required for appointment")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не указана
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceBusinessMismatch возвращается, когда услуга принадлежит другому бизнесу
	ErrServiceBusinessMismatch = errors.New("create_booking: service does not belong to this business")

	// ErrSlotTaken возвращается, когда слот записи уже занят
	ErrSlotTaken = errors.New("create_booking: time slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// TypeMismatchError несовпадение типа бронирования с типом бизнеса
// errors.Is(err, ErrTypeMismatch) == true
type TypeMismatchError struct {
	Requested string
	Supported domain.BookingType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: requested %q, business only supports %q", ErrTypeMismatch.Error(), e.Requested, e.Supported)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// rejectionReason метка причины отказа для метрик
func rejectionReason(err error) string {
	reasons := []struct {
		err    error
		reason string
	}{
		{ErrUnauthorized, "unauthorized"},
		{ErrInvalidBookingType, "invalid_type"},
		{ErrBusinessNotFound, "business_not_found"},
		{ErrTypeMismatch, "type_mismatch"},
		{ErrInvalidDate, "invalid_date"},
		{ErrInvalidInput, "invalid_input"},
		{ErrProductNotFound, "product_not_found"},
		{ErrWrongItemKind, "wrong_item_kind"},
		{ErrMissingDeliveryInfo, "missing_delivery_info"},
		{ErrMissingTableFields, "missing_table_fields"},
		{ErrCapacityExceeded, "capacity_exceeded"},
		{ErrMissingAppointmentFields, "missing_appointment_fields"},
		{ErrServiceNotFound, "service_not_found"},
		{ErrServiceBusinessMismatch, "service_business_mismatch"},
		{ErrSlotTaken, "slot_taken"},
	}

	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}
