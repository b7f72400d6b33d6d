package repositories

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUserInTx persists a new user within the given scope, so signup can
	// seed the user's initial accounts and categories atomically.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error

	// UpdateUser updates an existing user's mutable profile fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// DeleteUser removes a user; owned accounts, categories and transactions
	// go with it (FK cascade).
	DeleteUser(ctx context.Context, userID string) error

	// UpdateRefreshToken stores the hash and expiry of a freshly rotated
	// refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error

	// ClearRefreshToken invalidates the user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
