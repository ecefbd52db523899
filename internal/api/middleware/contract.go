package middleware

import (
	"context"
	"time"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// Authenticator определяет пользователя по bearer-токену
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// HTTPMetrics сбор метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
