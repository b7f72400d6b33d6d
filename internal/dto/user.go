package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterUserRequest defines the data needed to sign up a new user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// The cached balance is derived state and is deliberately absent here.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,url"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	PhotoURL  string          `json:"photoUrl,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		PhotoURL:  user.PhotoURL,
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
