// Package auth проверяет bearer-токены и определяет текущего пользователя
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/LocalBiz-BookingService/internal/infra/storage/catalog"
)

// Claims содержимое токена, sub - ID пользователя
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator проверяет HS256 токены и загружает пользователя из хранилища
type JWTAuthenticator struct {
	secret []byte
	users  UserRepository
	logger Logger
}

// NewJWTAuthenticator создает новый аутентификатор
func NewJWTAuthenticator(secret string, users UserRepository, logger Logger) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTAuthenticator{
		secret: []byte(secret),
		users:  users,
		logger: logger,
	}, nil
}

// Authenticate возвращает пользователя, которому выдан токен
// Роль берется из хранилища, а не из токена
func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := a.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: invalid subject %q", domain.ErrUnauthenticated, claims.Subject)
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) {
			a.logger.Warn("Authenticate: user id=%d from token not found", userID)
			return nil, fmt.Errorf("%w: user %d not found", domain.ErrUnauthenticated, userID)
		}
		a.logger.Error("Authenticate: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	return user, nil
}

// IssueToken выдает токен пользователю
func (a *JWTAuthenticator) IssueToken(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *JWTAuthenticator) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
