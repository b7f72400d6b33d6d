package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBalanceRepository recomputes the cached balance columns from the live
// transaction rows. Recomputation always re-sums from scratch instead of
// applying deltas: any drift from a previous partial failure self-heals on
// the next run because the transaction set is the only source of truth.
type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates the balance recalculation primitives.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRecalculator {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRecalculator = (*PgxBalanceRepository)(nil)

// RecalcAccountBalance recomputes one account's cached balance inside the
// caller's scope and cascades into the owning user's balance. The FOR UPDATE
// lock on the account row serializes concurrent recalculations of the same
// account; Postgres holds it until the scope commits or rolls back.
func (r *PgxBalanceRepository) RecalcAccountBalance(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	var userID string
	lockQuery := `
		SELECT user_id
		FROM user_accounts
		WHERE account_id = $1
		FOR UPDATE;
	`
	err := tx.QueryRow(ctx, lockQuery, accountID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A missing account at recalculation time is a referential
			// integrity bug upstream; fail the whole scope.
			return decimal.Zero, fmt.Errorf("recalc account balance %s: %w", accountID, apperrors.ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %s for recalculation: %w", accountID, err)
	}

	var newBalance decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM accounts_transactions
		WHERE account_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, accountID).Scan(&newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for account %s: %w", accountID, err)
	}

	updateQuery := `
		UPDATE user_accounts
		SET balance_cache = $1, updated_at = $2
		WHERE account_id = $3;
	`
	if _, err := tx.Exec(ctx, updateQuery, newBalance, time.Now().UTC(), accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to persist balance for account %s: %w", accountID, err)
	}

	// Account balances always ripple into the owning user's aggregate, and
	// always in this order: the user sum reads the account caches written
	// above within the same scope.
	if _, err := r.RecalcUserBalance(ctx, tx, userID); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// RecalcUserBalance recomputes one user's cached balance inside the caller's
// scope by summing the account caches (a second-order aggregate; cheaper than
// re-summing every transaction and correct because account recalculation
// precedes it in the same scope).
func (r *PgxBalanceRepository) RecalcUserBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(balance_cache), 0)
		FROM user_accounts
		WHERE user_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, userID).Scan(&newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances for user %s: %w", userID, err)
	}

	updateQuery := `
		UPDATE users
		SET balance_cache = $1, updated_at = $2
		WHERE user_id = $3;
	`
	tag, err := tx.Exec(ctx, updateQuery, newBalance, time.Now().UTC(), userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to persist balance for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return decimal.Zero, fmt.Errorf("recalc user balance %s: %w", userID, apperrors.ErrNotFound)
	}

	return newBalance, nil
}
