package auth

import "errors"

var (
	// ErrEmptySecret возвращается при создании аутентификатора без секрета
	ErrEmptySecret = errors.New("auth: jwt secret is empty")

	// ErrInternal возвращается при внутренних ошибках аутентификации
	ErrInternal = errors.New("auth: internal error")
)
