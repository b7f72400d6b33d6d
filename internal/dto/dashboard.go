package dto

import (
	"github.com/shopspring/decimal"
)

// DashboardParams defines query parameters for the dashboard report.
// Month/year default to the current month when omitted.
type DashboardParams struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  *int `form:"year" binding:"omitempty,min=1970"`
}

// MonthReport summarizes one month of activity.
type MonthReport struct {
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Savings       decimal.Decimal `json:"savings"`
	IncomeBalance decimal.Decimal `json:"income_balance"`
	OutgoBalance  decimal.Decimal `json:"outgo_balance"`
}

// DashboardResponse is the aggregate view returned by GET /dashboard.
type DashboardResponse struct {
	UserBalance     decimal.Decimal            `json:"user_balance"`
	MonthReport     MonthReport                `json:"month_report"`
	OutgoByCategory map[string]decimal.Decimal `json:"outgo_by_category"`
	Accounts        []AccountResponse          `json:"accounts"`
	Transactions    []TransactionResponse      `json:"transactions"`
}
