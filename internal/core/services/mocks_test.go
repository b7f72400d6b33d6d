package services_test

import (
	"context"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager helpers ---

func txFromArgs(args mock.Arguments, idx int) pgx.Tx {
	if args.Get(idx) == nil {
		return nil
	}
	return args.Get(idx).(pgx.Tx)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txFromArgs(args, 0), args.Error(1)
}

func (m *MockUserRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockUserRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txFromArgs(args, 0), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	args := m.Called(ctx, tx, accountID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	args := m.Called(ctx, userID, name)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	args := m.Called(ctx, categoryIDs)
	var categories map[string]domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).(map[string]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error {
	args := m.Called(ctx, tx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txFromArgs(args, 0), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByMonth(ctx context.Context, userID string, month int, year int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, month, year)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

// --- Mock BalanceRecalculator ---

type MockBalanceRecalculator struct {
	mock.Mock
}

func (m *MockBalanceRecalculator) RecalcAccountBalance(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID)
	var balance decimal.Decimal
	if args.Get(0) != nil {
		balance = args.Get(0).(decimal.Decimal)
	}
	return balance, args.Error(1)
}

func (m *MockBalanceRecalculator) RecalcUserBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID)
	var balance decimal.Decimal
	if args.Get(0) != nil {
		balance = args.Get(0).(decimal.Decimal)
	}
	return balance, args.Error(1)
}
