package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory implementation of the repository ports whose
// recalculation primitives re-sum from the stored transactions exactly like
// the SQL engine does. It lets the service flows be checked end to end:
// after any sequence of mutations the cached balances must equal the sums.
type fakeStore struct {
	users        map[string]*domain.User
	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*domain.User{},
		accounts:     map[string]*domain.Account{},
		transactions: map[string]*domain.Transaction{},
	}
}

func (f *fakeStore) Begin(ctx context.Context) (pgx.Tx, error)    { return nil, nil }
func (f *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error  { return nil }
func (f *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeStore) addUser(userID string) {
	f.users[userID] = &domain.User{UserID: userID, Balance: decimal.Zero}
}

// --- account port ---

func (f *fakeStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (f *fakeStore) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range f.accounts {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (f *fakeStore) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	stored := account
	f.accounts[account.AccountID] = &stored
	return nil
}

func (f *fakeStore) UpdateAccount(ctx context.Context, account domain.Account) error {
	stored, ok := f.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	balance := stored.Balance
	*stored = account
	stored.Balance = balance
	return nil
}

func (f *fakeStore) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	if _, ok := f.accounts[accountID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.accounts, accountID)
	for id, txn := range f.transactions {
		if txn.AccountID == accountID {
			delete(f.transactions, id)
		}
	}
	return nil
}

// --- transaction port ---

func (f *fakeStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, ok := f.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *txn
	return &clone, nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var txns []domain.Transaction
	for _, txn := range f.transactions {
		if txn.UserID == userID {
			txns = append(txns, *txn)
		}
	}
	return txns, nil, nil
}

func (f *fakeStore) ListTransactionsByMonth(ctx context.Context, userID string, month int, year int) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for _, txn := range f.transactions {
		if txn.UserID == userID && int(txn.CreatedAt.Month()) == month && txn.CreatedAt.Year() == year {
			txns = append(txns, *txn)
		}
	}
	return txns, nil
}

func (f *fakeStore) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	stored := txn
	f.transactions[txn.TransactionID] = &stored
	return nil
}

func (f *fakeStore) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if _, ok := f.transactions[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := txn
	f.transactions[txn.TransactionID] = &stored
	return nil
}

func (f *fakeStore) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	if _, ok := f.transactions[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.transactions, transactionID)
	return nil
}

// --- recalculation primitives ---

func (f *fakeStore) RecalcAccountBalance(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	sum := decimal.Zero
	for _, txn := range f.transactions {
		if txn.AccountID == accountID {
			sum = sum.Add(txn.Amount)
		}
	}
	account.Balance = sum
	if _, err := f.RecalcUserBalance(ctx, tx, account.UserID); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (f *fakeStore) RecalcUserBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	user, ok := f.users[userID]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	sum := decimal.Zero
	for _, account := range f.accounts {
		if account.UserID == userID {
			sum = sum.Add(account.Balance)
		}
	}
	user.Balance = sum
	return sum, nil
}

// --- minimal category port (unused paths return not found) ---

func (f *fakeStore) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeStore) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeStore) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	return map[string]domain.Category{}, nil
}
func (f *fakeStore) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	return nil, nil
}
func (f *fakeStore) SaveCategory(ctx context.Context, category domain.Category) error { return nil }
func (f *fakeStore) SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error {
	return nil
}
func (f *fakeStore) UpdateCategory(ctx context.Context, category domain.Category) error { return nil }
func (f *fakeStore) DeleteCategory(ctx context.Context, categoryID string) error        { return nil }

func (f *fakeStore) accountBalance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	account, ok := f.accounts[accountID]
	require.True(t, ok)
	return account.Balance
}

func (f *fakeStore) userBalance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	user, ok := f.users[userID]
	require.True(t, ok)
	return user.Balance
}

func TestBalanceConsistencyFlows(t *testing.T) {
	ctx := context.Background()

	t.Run("opening balance becomes a locked transaction", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)

		initial := decimal.RequireFromString("59.40")
		account, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name:           "Savings",
			InitialBalance: &initial,
			Icon:           "🏦",
			Color:          "#112233",
		})
		require.NoError(t, err)

		require.True(t, store.accountBalance(t, account.AccountID).Equal(initial))
		require.True(t, store.userBalance(t, userID).Equal(initial))

		require.Len(t, store.transactions, 1)
		for _, txn := range store.transactions {
			require.False(t, txn.Editable)
			require.Equal(t, "Initial balance", txn.Title)
		}
	})

	t.Run("creates re-sum instead of increment", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)
		txnSvc := services.NewTransactionService(store, store, store, store)

		account, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "Checking", Icon: "🏦", Color: "#112233",
		})
		require.NoError(t, err)

		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("112.43"),
		})
		require.NoError(t, err)
		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("350.00"),
		})
		require.NoError(t, err)

		expected := decimal.RequireFromString("462.43")
		require.True(t, store.accountBalance(t, account.AccountID).Equal(expected))
		require.True(t, store.userBalance(t, userID).Equal(expected))
	})

	t.Run("delete restores the pre-transaction balance", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)
		txnSvc := services.NewTransactionService(store, store, store, store)

		account, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "Wallet", Icon: "👛", Color: "#112233",
		})
		require.NoError(t, err)

		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("69.99"),
		})
		require.NoError(t, err)

		spend, err := txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("-23.50"),
		})
		require.NoError(t, err)
		require.True(t, store.accountBalance(t, account.AccountID).Equal(decimal.RequireFromString("46.49")))

		require.NoError(t, txnSvc.DeleteTransaction(ctx, userID, spend.TransactionID))
		require.True(t, store.accountBalance(t, account.AccountID).Equal(decimal.RequireFromString("69.99")))
		require.True(t, store.userBalance(t, userID).Equal(decimal.RequireFromString("69.99")))
	})

	t.Run("user balance spans accounts and survives account deletion", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)
		txnSvc := services.NewTransactionService(store, store, store, store)

		first, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "First", Icon: "1️⃣", Color: "#112233",
		})
		require.NoError(t, err)
		second, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "Second", Icon: "2️⃣", Color: "#445566",
		})
		require.NoError(t, err)

		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: first.AccountID,
			Amount:    decimal.RequireFromString("100.00"),
		})
		require.NoError(t, err)
		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: second.AccountID,
			Amount:    decimal.RequireFromString("40.00"),
		})
		require.NoError(t, err)

		require.True(t, store.userBalance(t, userID).Equal(decimal.RequireFromString("140.00")))

		require.NoError(t, accountSvc.DeleteAccount(ctx, userID, second.AccountID))
		require.True(t, store.userBalance(t, userID).Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("moving a transaction refreshes both accounts", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)
		txnSvc := services.NewTransactionService(store, store, store, store)

		from, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "From", Icon: "⬅️", Color: "#112233",
		})
		require.NoError(t, err)
		to, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "To", Icon: "➡️", Color: "#445566",
		})
		require.NoError(t, err)

		txn, err := txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: from.AccountID,
			Amount:    decimal.RequireFromString("75.00"),
		})
		require.NoError(t, err)

		_, err = txnSvc.UpdateTransaction(ctx, userID, txn.TransactionID, dto.UpdateTransactionRequest{
			AccountID: &to.AccountID,
		})
		require.NoError(t, err)

		require.True(t, store.accountBalance(t, from.AccountID).IsZero())
		require.True(t, store.accountBalance(t, to.AccountID).Equal(decimal.RequireFromString("75.00")))
		require.True(t, store.userBalance(t, userID).Equal(decimal.RequireFromString("75.00")))
	})

	t.Run("recalculating an empty account yields zero", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountID := uuid.NewString()
		now := time.Now().UTC()
		store.accounts[accountID] = &domain.Account{
			AccountID:  accountID,
			UserID:     userID,
			Name:       "Empty",
			Balance:    decimal.RequireFromString("999.99"), // stale cache on purpose
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}

		balance, err := store.RecalcAccountBalance(ctx, nil, accountID)
		require.NoError(t, err)
		require.True(t, balance.IsZero())
		require.True(t, store.userBalance(t, userID).IsZero())
	})

	t.Run("recalculation is idempotent", func(t *testing.T) {
		store := newFakeStore()
		userID := uuid.NewString()
		store.addUser(userID)
		accountSvc := services.NewAccountService(store, store, store)
		txnSvc := services.NewTransactionService(store, store, store, store)

		account, err := accountSvc.CreateAccount(ctx, userID, dto.CreateAccountRequest{
			Name: "Stable", Icon: "🪨", Color: "#112233",
		})
		require.NoError(t, err)
		_, err = txnSvc.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("12.34"),
		})
		require.NoError(t, err)

		first, err := store.RecalcAccountBalance(ctx, nil, account.AccountID)
		require.NoError(t, err)
		second, err := store.RecalcAccountBalance(ctx, nil, account.AccountID)
		require.NoError(t, err)
		require.True(t, first.Equal(second))
	})
}
