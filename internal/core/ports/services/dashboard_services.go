package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// DashboardSvcFacade produces the aggregate monthly view.
type DashboardSvcFacade interface {
	// GetDashboard assembles the user's balance, accounts, the month's
	// transactions and the derived income/outgo report for month/year.
	GetDashboard(ctx context.Context, userID string, month int, year int) (*dto.DashboardResponse, error)
}
