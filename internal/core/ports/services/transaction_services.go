package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// TransactionSvcFacade is the mutation boundary for transactions. Every
// mutating operation runs the row change and the balance recalculation of the
// affected account(s) inside a single database transaction; a failure in
// either rolls back both.
type TransactionSvcFacade interface {
	// CreateTransaction inserts a transaction and recalculates its account's
	// balance (cascading to the user) before commit.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves one of the user's transactions.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// UpdateTransaction applies changes to an editable transaction and
	// recalculates the current account before commit; when the update moved
	// the transaction to another account, the former account is recalculated
	// in the same scope as well.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and recalculates the account
	// it belonged to before commit.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}
