package domain

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single dated money movement on one account. Amount is
// signed: negative for money going out, positive for money coming in. A zero
// amount is rejected at validation; it never reaches the store.
//
// Editable is false for system-generated rows (the opening-balance
// transaction created alongside an account); such rows may never be updated.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	AccountID     string          `json:"accountID"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	Title         string          `json:"title,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	Editable      bool            `json:"editable"`
	Timestamps
}

// Kind derives the transaction's classification from the sign of its amount.
// It is never stored and never accepted as input. Zero classifies as income;
// a zero amount is unreachable for user-created rows (validation rejects it)
// and opening-balance rows are only created for a positive initial balance.
func (t Transaction) Kind() CategoryKind {
	if t.Amount.IsNegative() {
		return KindOutgo
	}
	return KindIncome
}

// TransactionFilter narrows transaction listings. Nil fields are ignored.
type TransactionFilter struct {
	Kind       *CategoryKind
	Month      *int
	Year       *int
	AccountID  *string
	CategoryID *string
}
