package domain_test

import (
	"testing"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Kind(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   domain.CategoryKind
	}{
		{
			name:   "positive amount is income",
			amount: decimal.NewFromFloat(112.43),
			want:   domain.KindIncome,
		},
		{
			name:   "negative amount is outgo",
			amount: decimal.NewFromFloat(-23.50),
			want:   domain.KindOutgo,
		},
		{
			name:   "zero classifies as income",
			amount: decimal.Zero,
			want:   domain.KindIncome,
		},
		{
			name:   "small negative fraction is outgo",
			amount: decimal.NewFromFloat(-0.01),
			want:   domain.KindOutgo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Amount: tt.amount}
			assert.Equal(t, tt.want, txn.Kind())
		})
	}
}

func TestCategoryKind_Valid(t *testing.T) {
	assert.True(t, domain.KindIncome.Valid())
	assert.True(t, domain.KindOutgo.Valid())
	assert.False(t, domain.CategoryKind("expense").Valid())
	assert.False(t, domain.CategoryKind("").Valid())
}
