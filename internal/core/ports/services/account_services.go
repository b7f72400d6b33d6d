package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// AccountSvcFacade defines account management operations. All operations are
// scoped to the authenticated user; an account belonging to someone else
// surfaces as not-found.
type AccountSvcFacade interface {
	// CreateAccount creates an account. A positive initial balance also
	// creates a non-editable opening-balance transaction and recalculates
	// caches, all in the same unit of work.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves one of the user's accounts.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all of the user's accounts.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// UpdateAccount applies cosmetic changes (name, bank, icon, color).
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes the account, its transactions, and refreshes the
	// user's cached balance in the same unit of work.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}
