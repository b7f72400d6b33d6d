package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of a user's
	// transactions ordered by creation time descending, using token-based
	// pagination. It returns the transactions, a token for the next page,
	// and an error.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByMonth retrieves all of a user's transactions created
	// in the given month/year, newest first.
	ListTransactionsByMonth(ctx context.Context, userID string, month int, year int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Every
// method takes an open scope: a transaction mutation is never persisted
// outside the unit of work that also recalculates the affected balances.
type TransactionWriter interface {
	// SaveTransactionInTx inserts a transaction row within the given scope.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionInTx persists changed fields of a transaction within
	// the given scope.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes a transaction row within the given scope.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
