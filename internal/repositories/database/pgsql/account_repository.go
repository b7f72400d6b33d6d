package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, name, balance_cache, bank, icon, color, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var bank sql.NullString

	err := row.Scan(
		&account.AccountID,
		&account.UserID,
		&account.Name,
		&account.Balance,
		&bank,
		&account.Icon,
		&account.Color,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}

	if bank.Valid {
		account.Bank = &bank.String
	}
	return &account, nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM user_accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccountsByUser retrieves every account owned by a user, ordered by name.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM user_accounts WHERE user_id = $1 ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccountInTx persists a new account within the given scope.
func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	query := `
		INSERT INTO user_accounts (account_id, user_id, name, balance_cache, bank, icon, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	var bank sql.NullString
	if account.Bank != nil {
		bank = sql.NullString{String: *account.Bank, Valid: true}
	}

	_, err := tx.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Name,
		account.Balance,
		bank,
		account.Icon,
		account.Color,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an account's mutable fields. The cached balance is
// only ever written by the balance recalculation primitives.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE user_accounts
		SET name = $1, bank = $2, icon = $3, color = $4, updated_at = $5
		WHERE account_id = $6;
	`
	var bank sql.NullString
	if account.Bank != nil {
		bank = sql.NullString{String: *account.Bank, Valid: true}
	}

	tag, err := r.Pool.Exec(ctx, query, account.Name, bank, account.Icon, account.Color, account.UpdatedAt, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccountInTx removes an account within the given scope. Transactions
// on the account are removed by FK cascade; the caller recalculates the
// owning user's balance in the same scope.
func (r *PgxAccountRepository) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM user_accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
