package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	userRepo        *MockUserRepository
	accountRepo     *MockAccountRepository
	categoryRepo    *MockCategoryRepository
	transactionRepo *MockTransactionRepository
	service         portssvc.DashboardSvcFacade
	ctx             context.Context
}

func (s *DashboardServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.accountRepo = new(MockAccountRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.transactionRepo = new(MockTransactionRepository)
	s.service = services.NewDashboardService(s.userRepo, s.accountRepo, s.categoryRepo, s.transactionRepo)
	s.ctx = context.Background()
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func (s *DashboardServiceTestSuite) monthTxn(userID, accountID string, categoryID *string, amount string, day int) domain.Transaction {
	created := time.Date(2026, time.March, day, 12, 0, 0, 0, time.UTC)
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     accountID,
		CategoryID:    categoryID,
		Amount:        decimal.RequireFromString(amount),
		Editable:      true,
		Timestamps:    domain.Timestamps{CreatedAt: created, UpdatedAt: created},
	}
}

func (s *DashboardServiceTestSuite) TestGetDashboard_AggregatesMonth() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	groceriesID := uuid.NewString()
	transportID := uuid.NewString()
	deletedID := uuid.NewString()

	user := &domain.User{UserID: userID, Balance: decimal.RequireFromString("812.55")}
	accounts := []domain.Account{{
		AccountID: accountID,
		UserID:    userID,
		Name:      "Wallet",
		Balance:   decimal.RequireFromString("812.55"),
	}}
	transactions := []domain.Transaction{
		s.monthTxn(userID, accountID, nil, "2500.00", 28),
		s.monthTxn(userID, accountID, &groceriesID, "-120.00", 20),
		s.monthTxn(userID, accountID, &groceriesID, "-80.50", 14),
		s.monthTxn(userID, accountID, &transportID, "-45.00", 9),
		s.monthTxn(userID, accountID, &deletedID, "-10.00", 5),
		s.monthTxn(userID, accountID, nil, "-5.25", 2),
	}

	s.userRepo.On("FindUserByID", s.ctx, userID).Return(user, nil)
	s.accountRepo.On("ListAccountsByUser", s.ctx, userID).Return(accounts, nil)
	s.transactionRepo.On("ListTransactionsByMonth", s.ctx, userID, 3, 2026).Return(transactions, nil)
	s.categoryRepo.On("FindCategoriesByIDs", s.ctx, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 3
	})).Return(map[string]domain.Category{
		groceriesID: {CategoryID: groceriesID, Name: "Groceries", Kind: domain.KindOutgo},
		transportID: {CategoryID: transportID, Name: "Transport", Kind: domain.KindOutgo},
	}, nil)

	dashboard, err := s.service.GetDashboard(s.ctx, userID, 3, 2026)
	s.Require().NoError(err)

	s.True(dashboard.UserBalance.Equal(decimal.RequireFromString("812.55")))
	s.Equal("March 2026", dashboard.MonthReport.Name)
	s.True(dashboard.MonthReport.IncomeBalance.Equal(decimal.RequireFromString("2500.00")))
	s.True(dashboard.MonthReport.OutgoBalance.Equal(decimal.RequireFromString("260.75")))
	s.True(dashboard.MonthReport.Savings.Equal(decimal.RequireFromString("2239.25")))
	s.True(dashboard.MonthReport.Balance.Equal(dashboard.MonthReport.Savings))

	s.Len(dashboard.OutgoByCategory, 3)
	s.True(dashboard.OutgoByCategory["Groceries"].Equal(decimal.RequireFromString("200.50")))
	s.True(dashboard.OutgoByCategory["Transport"].Equal(decimal.RequireFromString("45.00")))
	// uncategorized and deleted-category outgo land in the same bucket
	s.True(dashboard.OutgoByCategory["Other"].Equal(decimal.RequireFromString("15.25")))

	s.Len(dashboard.Accounts, 1)
	s.Len(dashboard.Transactions, 6)
}

func (s *DashboardServiceTestSuite) TestGetDashboard_EmptyMonth() {
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Balance: decimal.RequireFromString("50.00")}

	s.userRepo.On("FindUserByID", s.ctx, userID).Return(user, nil)
	s.accountRepo.On("ListAccountsByUser", s.ctx, userID).Return([]domain.Account{}, nil)
	s.transactionRepo.On("ListTransactionsByMonth", s.ctx, userID, 1, 2026).Return([]domain.Transaction{}, nil)
	s.categoryRepo.On("FindCategoriesByIDs", s.ctx, mock.Anything).Return(map[string]domain.Category{}, nil)

	dashboard, err := s.service.GetDashboard(s.ctx, userID, 1, 2026)
	s.Require().NoError(err)

	s.Equal("January 2026", dashboard.MonthReport.Name)
	s.True(dashboard.MonthReport.IncomeBalance.IsZero())
	s.True(dashboard.MonthReport.OutgoBalance.IsZero())
	s.True(dashboard.MonthReport.Savings.IsZero())
	s.True(dashboard.UserBalance.Equal(decimal.RequireFromString("50.00")))
	s.Empty(dashboard.OutgoByCategory)
}
