package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves every account owned by a user, ordered by name.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccountInTx persists a new account within the given scope, so
	// account creation can insert an opening-balance transaction and
	// recalculate caches in the same unit of work.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccount updates an account's mutable fields (name, bank, icon,
	// color). The cached balance is not written here.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccountInTx removes an account within the given scope; its
	// transactions go with it (FK cascade). The caller must recalculate the
	// owning user's balance in the same scope.
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
