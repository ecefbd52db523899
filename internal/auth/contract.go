package auth

import (
	"context"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// UserRepository интерфейс поиска пользователей
type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
