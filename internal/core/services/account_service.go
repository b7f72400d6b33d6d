package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// openingBalanceTitle names the transaction that carries an account's
// starting funds.
const openingBalanceTitle = "Initial balance"

type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryWithTx
	transactionRepo portsrepo.TransactionRepositoryWithTx
	balanceRepo     portsrepo.BalanceRecalculator
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, transactionRepo portsrepo.TransactionRepositoryWithTx, balanceRepo portsrepo.BalanceRecalculator) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		balanceRepo:     balanceRepo,
	}
}

// CreateAccount creates an account. A positive initial balance is represented
// as a regular, non-editable transaction so that the re-sum invariant covers
// it; account row, opening transaction and cache refresh commit together.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:  uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Balance:    decimal.Zero,
		Bank:       req.Bank,
		Icon:       req.Icon,
		Color:      req.Color,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	if req.InitialBalance != nil && req.InitialBalance.IsPositive() {
		opening := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			AccountID:     account.AccountID,
			Title:         openingBalanceTitle,
			Amount:        *req.InitialBalance,
			Editable:      false,
			Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, opening); err != nil {
			s.LogError(ctx, err, "Failed to save opening transaction", slog.String("account_id", account.AccountID))
			return nil, err
		}

		newBalance, err := s.balanceRepo.RecalcAccountBalance(ctx, tx, account.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to recalculate balances for new account", slog.String("account_id", account.AccountID))
			return nil, err
		}
		account.Balance = newBalance
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewInternalServerError("failed to commit account creation", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves one of the user's accounts. Someone else's
// account is indistinguishable from a missing one.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves all of the user's accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount applies cosmetic changes. Balance is derived state and is
// not touched here.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Bank != nil {
		account.Bank = req.Bank
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes the account and its transactions, then refreshes the
// user's cached balance in the same unit of work so the total never drifts.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if err := s.accountRepo.DeleteAccountInTx(ctx, tx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	if _, err := s.balanceRepo.RecalcUserBalance(ctx, tx, userID); err != nil {
		s.LogError(ctx, err, "Failed to recalculate user balance after account delete", slog.String("user_id", userID))
		return err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return apperrors.NewInternalServerError("failed to commit account deletion", err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
