package availability

import "errors"

var (
	// ErrCapacityExceeded возвращается, когда на выбранный день и время не хватает столов
	ErrCapacityExceeded = errors.New("availability: not enough tables available")

	// ErrSlotTaken возвращается, когда слот записи уже занят
	ErrSlotTaken = errors.New("availability: time slot already booked")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
