package userservice

import (
	"strings"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

// User модель пользователя из UserService
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToDomain конвертирует пользователя в domain модель
// Неизвестная роль считается обычным пользователем
func (u *User) ToDomain() *domain.User {
	role := domain.RoleUser
	if strings.EqualFold(u.Role, string(domain.RoleAdmin)) {
		role = domain.RoleAdmin
	}
	return &domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  role,
	}
}
