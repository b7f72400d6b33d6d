package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// RegisterUser creates a local user and seeds their initial data (a
	// default account and the default category set) in one unit of work.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies local credentials and returns the user.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves the user for a validated OAuth identity,
	// creating (and seeding) one on first login.
	FindOrCreateOAuthUser(ctx context.Context, name string, email string, photoURL string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UpdateUser applies profile changes. The cached balance is read-only.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser removes the user and everything they own.
	DeleteUser(ctx context.Context, userID string) error

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}
