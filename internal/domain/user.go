package domain

import "errors"

// ErrUnauthenticated is returned when a bearer token does not identify a user
var ErrUnauthenticated = errors.New("unauthenticated")

// Role of an authenticated user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an authenticated requester
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Ref returns the display reference of the user
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
