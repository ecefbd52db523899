package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда нет ни услуги, ни товара вида service с таким ID
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
