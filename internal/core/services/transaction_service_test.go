package services_test

import (
	"context"
	"testing"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockCatRepo     *MockCategoryRepository
	mockBalanceRepo *MockBalanceRecalculator
	service         portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCatRepo = new(MockCategoryRepository)
	s.mockBalanceRepo = new(MockBalanceRecalculator)
	s.service = services.NewTransactionService(s.mockTxnRepo, s.mockAccountRepo, s.mockCatRepo, s.mockBalanceRepo)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()
	amount := decimal.RequireFromString("350.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, UserID: userID}, nil).Once()

	s.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == userID && txn.AccountID == accountID && txn.Amount.Equal(amount) && txn.Editable
	})).Return(nil).Once()
	s.mockBalanceRepo.On("RecalcAccountBalance", ctx, nil, accountID).
		Return(decimal.RequireFromString("462.43"), nil).Once()
	s.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()
	s.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	txn, err := s.service.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		AccountID: accountID,
		Title:     "Paycheck",
		Amount:    amount,
	})

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.Equal(domain.KindIncome, txn.Kind())
	s.True(txn.Editable)

	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockBalanceRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmountRejected() {
	ctx := context.Background()

	txn, err := s.service.CreateTransaction(ctx, uuid.NewString(), dto.CreateTransactionRequest{
		AccountID: uuid.NewString(),
		Amount:    decimal.Zero,
	})

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockTxnRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccountNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, UserID: uuid.NewString()}, nil).Once()

	txn, err := s.service.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(10),
	})

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockTxnRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RecalcFailureRollsBack() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, UserID: userID}, nil).Once()

	s.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("SaveTransactionInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	s.mockBalanceRepo.On("RecalcAccountBalance", ctx, nil, accountID).
		Return(decimal.Zero, assert.AnError).Once()
	s.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, userID, dto.CreateTransactionRequest{
		AccountID: accountID,
		Amount:    decimal.NewFromInt(-25),
	})

	s.Require().Error(err)
	s.Nil(txn)
	s.mockTxnRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_NotEditableForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	txnID := uuid.NewString()

	s.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, UserID: userID, Editable: false}, nil).Once()

	newTitle := "new title"
	updated, err := s.service.UpdateTransaction(ctx, userID, txnID, dto.UpdateTransactionRequest{Title: &newTitle})

	s.Require().Error(err)
	s.Nil(updated)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockTxnRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_MoveRecalculatesBothAccounts() {
	ctx := context.Background()
	userID := uuid.NewString()
	txnID := uuid.NewString()
	oldAccountID := uuid.NewString()
	newAccountID := uuid.NewString()

	s.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{
			TransactionID: txnID,
			UserID:        userID,
			AccountID:     oldAccountID,
			Amount:        decimal.NewFromInt(-20),
			Editable:      true,
		}, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, newAccountID).
		Return(&domain.Account{AccountID: newAccountID, UserID: userID}, nil).Once()

	s.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("UpdateTransactionInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == newAccountID
	})).Return(nil).Once()
	s.mockBalanceRepo.On("RecalcAccountBalance", ctx, nil, newAccountID).Return(decimal.Zero, nil).Once()
	s.mockBalanceRepo.On("RecalcAccountBalance", ctx, nil, oldAccountID).Return(decimal.Zero, nil).Once()
	s.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()
	s.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	updated, err := s.service.UpdateTransaction(ctx, userID, txnID, dto.UpdateTransactionRequest{AccountID: &newAccountID})

	s.Require().NoError(err)
	s.Equal(newAccountID, updated.AccountID)
	s.mockBalanceRepo.AssertExpectations(s.T())
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction_RecalculatesFormerAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	txnID := uuid.NewString()
	accountID := uuid.NewString()

	// Non-editable transactions can still be deleted by their owner.
	s.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{
			TransactionID: txnID,
			UserID:        userID,
			AccountID:     accountID,
			Amount:        decimal.RequireFromString("-23.50"),
			Editable:      false,
		}, nil).Once()

	s.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("DeleteTransactionInTx", ctx, nil, txnID).Return(nil).Once()
	s.mockBalanceRepo.On("RecalcAccountBalance", ctx, nil, accountID).
		Return(decimal.RequireFromString("69.99"), nil).Once()
	s.mockTxnRepo.On("Commit", ctx, nil).Return(nil).Once()
	s.mockTxnRepo.On("Rollback", ctx, nil).Return(nil).Maybe()

	err := s.service.DeleteTransaction(ctx, userID, txnID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockBalanceRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestGetTransactionByID_ForeignOwnerNotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()

	s.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, UserID: uuid.NewString()}, nil).Once()

	txn, err := s.service.GetTransactionByID(ctx, uuid.NewString(), txnID)

	s.Require().Error(err)
	s.Nil(txn)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()
	userID := uuid.NewString()

	s.mockTxnRepo.On("ListTransactions", ctx, userID, mock.AnythingOfType("domain.TransactionFilter"), 50, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()

	_, _, err := s.service.ListTransactions(ctx, userID, dto.ListTransactionsParams{Limit: 5000})

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
