package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceRecalculator recomputes cached balances from first principles inside
// a caller-supplied transactional scope. These are the only code paths that
// may write users.balance_cache and user_accounts.balance_cache.
type BalanceRecalculator interface {
	// RecalcAccountBalance locks the account row, re-sums every transaction
	// amount on the account (an empty set sums to zero), persists the result
	// as the account's cached balance and then cascades into
	// RecalcUserBalance for the owning user. Returns the new account balance.
	// The account must exist; a missing row is apperrors.ErrNotFound and is
	// fatal to the enclosing scope.
	RecalcAccountBalance(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error)

	// RecalcUserBalance re-sums the cached balances of the user's accounts
	// (not the raw transactions; account caches are already correct within
	// the same scope because account recalculation always runs first) and
	// persists the result as the user's cached balance.
	RecalcUserBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error)
}
