package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
)

// transactionService is the only write path for transactions. Each mutation
// and the recalculation of every affected account balance run inside one
// database transaction; a failure in either rolls back both, so cached
// balances can never disagree with the stored transactions.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryWithTx
	accountRepo     portsrepo.AccountRepositoryWithTx
	categoryRepo    portsrepo.CategoryRepositoryFacade
	balanceRepo     portsrepo.BalanceRecalculator
}

// NewTransactionService creates the transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, categoryRepo portsrepo.CategoryRepositoryFacade, balanceRepo portsrepo.BalanceRecalculator) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		balanceRepo:     balanceRepo,
	}
}

// checkAccountOwnership verifies the account exists and belongs to the user.
// Someone else's account surfaces as not-found.
func (s *transactionService) checkAccountOwnership(ctx context.Context, userID string, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

// checkCategoryOwnership verifies the category exists and belongs to the user.
func (s *transactionService) checkCategoryOwnership(ctx context.Context, userID string, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateTransaction inserts a transaction and recalculates its account's
// balance (which cascades into the user's) before commit.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
	}
	if err := s.checkAccountOwnership(ctx, userID, req.AccountID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryOwnership(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Amount:        req.Amount,
		Note:          req.Note,
		Editable:      true,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.transactionRepo.Rollback(ctx, tx)

	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if _, err := s.balanceRepo.RecalcAccountBalance(ctx, tx, txn.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to recalculate balances after create", slog.String("account_id", txn.AccountID))
		return nil, err
	}

	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewInternalServerError("failed to commit transaction creation", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// GetTransactionByID retrieves one of the user's transactions.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, nextToken, err := s.transactionRepo.ListTransactions(ctx, userID, params.Filter(), limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		}
		return nil, nil, err
	}
	return transactions, nextToken, nil
}

// UpdateTransaction applies changes to an editable transaction and refreshes
// the affected balances before commit. If the update moved the transaction to
// another account, both the new and the former account are recalculated in
// the same scope, so neither side is ever left stale.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Editable {
		return nil, fmt.Errorf("%w: transaction is not editable", apperrors.ErrForbidden)
	}

	formerAccountID := txn.AccountID
	if req.AccountID != nil && *req.AccountID != txn.AccountID {
		if err := s.checkAccountOwnership(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		txn.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryOwnership(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		txn.CategoryID = req.CategoryID
	}
	if req.Title != nil {
		txn.Title = *req.Title
	}
	if req.Amount != nil {
		if req.Amount.IsZero() {
			return nil, fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	txn.UpdatedAt = time.Now().UTC()

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.transactionRepo.Rollback(ctx, tx)

	if err := s.transactionRepo.UpdateTransactionInTx(ctx, tx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if _, err := s.balanceRepo.RecalcAccountBalance(ctx, tx, txn.AccountID); err != nil {
		s.LogError(ctx, err, "Failed to recalculate balances after update", slog.String("account_id", txn.AccountID))
		return nil, err
	}
	if formerAccountID != txn.AccountID {
		if _, err := s.balanceRepo.RecalcAccountBalance(ctx, tx, formerAccountID); err != nil {
			s.LogError(ctx, err, "Failed to recalculate former account after move", slog.String("account_id", formerAccountID))
			return nil, err
		}
	}

	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewInternalServerError("failed to commit transaction update", err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

// DeleteTransaction removes a transaction and recalculates the account it
// belonged to before commit. Ownership alone authorizes deletion; the
// editable flag only guards updates.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	accountID := txn.AccountID

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.transactionRepo.Rollback(ctx, tx)

	if err := s.transactionRepo.DeleteTransactionInTx(ctx, tx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	if _, err := s.balanceRepo.RecalcAccountBalance(ctx, tx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to recalculate balances after delete", slog.String("account_id", accountID))
		return err
	}

	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return apperrors.NewInternalServerError("failed to commit transaction deletion", err)
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("account_id", accountID))
	return nil
}
