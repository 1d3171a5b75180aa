package dto

import (
	"time"

	domainuser "dreamstay/internal/domain/user"
)

type UserDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

func MapUser(u *domainuser.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthResponse(u *domainuser.User, token string) AuthResponse {
	return AuthResponse{User: MapUser(u), Token: token}
}
