package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// When InitialBalance is set and positive, an opening-balance transaction is
// created atomically with the account.
type CreateAccountRequest struct {
	Name           string           `json:"name" binding:"required,max=255"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
	Bank           *string          `json:"bank" binding:"omitempty,min=1,max=25"`
	Icon           string           `json:"icon" binding:"required,min=1,max=10"`
	Color          string           `json:"color" binding:"required,hexcolor"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The cached balance is derived state and is deliberately absent here.
type UpdateAccountRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Bank  *string `json:"bank" binding:"omitempty,min=1,max=25"`
	Icon  *string `json:"icon" binding:"omitempty,min=1,max=10"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Bank      *string         `json:"bank,omitempty"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Balance:   acc.Balance,
		Bank:      acc.Bank,
		Icon:      acc.Icon,
		Color:     acc.Color,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
