package response

import (
	"time"

	"sith-voyages/internal/data/entity"
)

type AuthResponse struct {
	UserID      string          `json:"user_id"`
	Token       string          `json:"token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Role        entity.UserRole `json:"role"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	FullName    *string         `json:"full_name,omitempty"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	Role        entity.UserRole `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
}
