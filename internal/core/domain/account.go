package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a container of transactions (a wallet, a bank account).
// Balance is the cached sum of the amounts of all transactions on the
// account. It is never accepted as input; only the balance recalculation
// primitives write it.
type Account struct {
	AccountID string          `json:"accountID"`
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Bank      *string         `json:"bank,omitempty"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Timestamps
}
