package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryWithTx {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryWithTx = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, photo_url, balance_cache, auth_provider, password_hash, refresh_token_hash, refresh_token_expiry, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var photoURL, passwordHash, refreshTokenHash sql.NullString
	var refreshTokenExpiry sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&photoURL,
		&user.Balance,
		&user.AuthProvider,
		&passwordHash,
		&refreshTokenHash,
		&refreshTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}

	if photoURL.Valid {
		user.PhotoURL = photoURL.String
	}
	if passwordHash.Valid {
		user.PasswordHash = &passwordHash.String
	}
	if refreshTokenHash.Valid {
		user.RefreshTokenHash = refreshTokenHash.String
	}
	if refreshTokenExpiry.Valid {
		user.RefreshTokenExpiryTime = &refreshTokenExpiry.Time
	}
	return &user, nil
}

// SaveUserInTx inserts a new user row within the given scope.
func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, photo_url, balance_cache, auth_provider, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	var photoURL sql.NullString
	if user.PhotoURL != "" {
		photoURL = sql.NullString{String: user.PhotoURL, Valid: true}
	}
	var passwordHash sql.NullString
	if user.PasswordHash != nil {
		passwordHash = sql.NullString{String: *user.PasswordHash, Valid: true}
	}

	_, err := tx.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		photoURL,
		user.Balance,
		user.AuthProvider,
		passwordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by their email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// UpdateUser updates a user's mutable profile fields. The cached balance is
// written only by the balance recalculation primitives, never here.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $1, photo_url = $2, updated_at = $3
		WHERE user_id = $4;
	`
	var photoURL sql.NullString
	if user.PhotoURL != "" {
		photoURL = sql.NullString{String: user.PhotoURL, Valid: true}
	}

	tag, err := r.Pool.Exec(ctx, query, user.Name, photoURL, user.UpdatedAt, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user row. Accounts, categories and transactions are
// removed by FK cascade.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a rotated refresh token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $1, refresh_token_expiry = $2, updated_at = $3
		WHERE user_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiresAt, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearRefreshToken invalidates the user's stored refresh token.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expiry = NULL, updated_at = $1
		WHERE user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
