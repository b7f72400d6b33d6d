package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount is signed; zero is rejected. Kind is derived from the sign and is
// never accepted as input.
type CreateTransactionRequest struct {
	AccountID  string          `json:"accountID" binding:"required"`
	CategoryID *string         `json:"categoryID"`
	Title      string          `json:"title" binding:"omitempty,min=1,max=255"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Note       string          `json:"note" binding:"omitempty,max=255"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Kind is derived and deliberately absent here.
type UpdateTransactionRequest struct {
	AccountID  *string          `json:"accountID"`
	CategoryID *string          `json:"categoryID"`
	Title      *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       *string          `json:"note" binding:"omitempty,max=255"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Kind       *string `form:"kind" binding:"omitempty,oneof=income outgo"`
	Month      *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       *int    `form:"year" binding:"omitempty,min=1970"`
	AccountID  *string `form:"account"`
	CategoryID *string `form:"category"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
}

// Filter converts the bound query parameters into a domain filter.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	f := domain.TransactionFilter{
		Month:      p.Month,
		Year:       p.Year,
		AccountID:  p.AccountID,
		CategoryID: p.CategoryID,
	}
	if p.Kind != nil {
		kind := domain.CategoryKind(*p.Kind)
		f.Kind = &kind
	}
	return f
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string              `json:"transactionID"`
	AccountID     string              `json:"accountID"`
	CategoryID    *string             `json:"categoryID,omitempty"`
	Title         string              `json:"title,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Kind          domain.CategoryKind `json:"kind"`
	Note          string              `json:"note,omitempty"`
	Editable      bool                `json:"editable"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
// Kind is computed from the amount's sign at serialization time.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CategoryID:    txn.CategoryID,
		Title:         txn.Title,
		Amount:        txn.Amount,
		Kind:          txn.Kind(),
		Note:          txn.Note,
		Editable:      txn.Editable,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
