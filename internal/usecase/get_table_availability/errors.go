package get_table_availability

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_table_availability: business not found")

	// ErrNotTableBusiness возвращается, когда бизнес не принимает бронирование столов
	ErrNotTableBusiness = errors.New("get_table_availability: business does not accept table bookings")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_table_availability: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_table_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_table_availability: internal error")
)
