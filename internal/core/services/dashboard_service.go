package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// uncategorizedLabel groups outgo whose category was deleted or never set.
const uncategorizedLabel = "Other"

type dashboardService struct {
	BaseService
	userRepo        portsrepo.UserRepositoryWithTx
	accountRepo     portsrepo.AccountRepositoryWithTx
	categoryRepo    portsrepo.CategoryRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryWithTx
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(userRepo portsrepo.UserRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, categoryRepo portsrepo.CategoryRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryWithTx) portssvc.DashboardSvcFacade {
	return &dashboardService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// GetDashboard assembles the user's overall balance, their accounts, the
// month's transactions and the derived income/outgo report. Balances are
// read straight from the caches; the mutation paths keep those consistent.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string, month int, year int) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for dashboard")
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsByMonth(ctx, userID, month, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to list month transactions for dashboard")
		return nil, err
	}

	income := decimal.Zero
	outgo := decimal.Zero
	outgoByCategoryID := map[string]decimal.Decimal{}
	categoryIDs := []string{}
	for _, txn := range transactions {
		if txn.Kind() == domain.KindIncome {
			income = income.Add(txn.Amount)
			continue
		}
		outgo = outgo.Add(txn.Amount)

		key := ""
		if txn.CategoryID != nil {
			key = *txn.CategoryID
			if _, seen := outgoByCategoryID[key]; !seen {
				categoryIDs = append(categoryIDs, key)
			}
		}
		outgoByCategoryID[key] = outgoByCategoryID[key].Add(txn.Amount.Abs())
	}

	categories, err := s.categoryRepo.FindCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve categories for dashboard")
		return nil, err
	}

	outgoByCategory := make(map[string]decimal.Decimal, len(outgoByCategoryID))
	for categoryID, total := range outgoByCategoryID {
		label := uncategorizedLabel
		if category, ok := categories[categoryID]; ok {
			label = category.Name
		}
		outgoByCategory[label] = outgoByCategory[label].Add(total)
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	report := dto.MonthReport{
		Name:          fmt.Sprintf("%s %d", monthStart.Month().String(), year),
		Balance:       income.Add(outgo),
		Savings:       income.Add(outgo),
		IncomeBalance: income,
		OutgoBalance:  outgo.Abs(),
	}

	return &dto.DashboardResponse{
		UserBalance:     user.Balance,
		MonthReport:     report,
		OutgoByCategory: outgoByCategory,
		Accounts:        dto.ToListAccountResponse(accounts),
		Transactions:    dto.ToListTransactionsResponse(transactions, nil).Transactions,
	}, nil
}
