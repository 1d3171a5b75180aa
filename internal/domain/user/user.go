package user

import (
	"context"
	"strings"
	"time"

	"dreamstay/internal/domain/shared/apperr"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// ParseRole accepts the self-registerable roles. Admin accounts are seeded
// out of band, never through registration.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleHost:
		return RoleHost, nil
	default:
		return "", apperr.Validation("role must be guest or host")
	}
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
}

func (u *User) Is(role Role) bool {
	return u.Role == role
}

type Repository interface {
	ByID(ctx context.Context, id int64) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)

	// Insert allocates the integer id; duplicate email is a Conflict.
	Insert(ctx context.Context, u *User) error
}
