package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack-app/fintrack_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, account_id, category_id, title, amount, note, editable, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var categoryID sql.NullString

	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.AccountID,
		&categoryID,
		&txn.Title,
		&txn.Amount,
		&txn.Note,
		&txn.Editable,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	return &txn, nil
}

// FindTransactionByID retrieves a specific transaction by its unique identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM accounts_transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of a user's transactions ordered
// by creation time descending. Pagination is keyset-based on
// (created_at, transaction_id) so inserts between pages never shift results.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM accounts_transactions WHERE user_id = $1`)
	args := []any{userID}

	addArg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Kind != nil {
		if *filter.Kind == domain.KindOutgo {
			sb.WriteString(` AND amount < 0`)
		} else {
			sb.WriteString(` AND amount >= 0`)
		}
	}
	if filter.Month != nil {
		sb.WriteString(` AND EXTRACT(MONTH FROM created_at) = ` + addArg(*filter.Month))
	}
	if filter.Year != nil {
		sb.WriteString(` AND EXTRACT(YEAR FROM created_at) = ` + addArg(*filter.Year))
	}
	if filter.AccountID != nil {
		sb.WriteString(` AND account_id = ` + addArg(*filter.AccountID))
	}
	if filter.CategoryID != nil {
		sb.WriteString(` AND category_id = ` + addArg(*filter.CategoryID))
	}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		timeArg := addArg(cursorTime)
		idArg := addArg(cursorID)
		sb.WriteString(fmt.Sprintf(` AND (created_at, transaction_id) < (%s, %s)`, timeArg, idArg))
	}

	// Fetch one extra row to know whether another page exists.
	sb.WriteString(` ORDER BY created_at DESC, transaction_id DESC LIMIT ` + addArg(limit+1))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newNextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}
	return transactions, newNextToken, nil
}

// ListTransactionsByMonth retrieves all of a user's transactions created in
// the given month and year, newest first.
func (r *PgxTransactionRepository) ListTransactionsByMonth(ctx context.Context, userID string, month int, year int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM accounts_transactions
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM created_at) = $2
		  AND EXTRACT(YEAR FROM created_at) = $3
		ORDER BY created_at DESC, transaction_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list month transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// SaveTransactionInTx inserts a transaction row within the given scope.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO accounts_transactions (transaction_id, user_id, account_id, category_id, title, amount, note, editable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	var categoryID sql.NullString
	if txn.CategoryID != nil {
		categoryID = sql.NullString{String: *txn.CategoryID, Valid: true}
	}

	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.AccountID,
		categoryID,
		txn.Title,
		txn.Amount,
		txn.Note,
		txn.Editable,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// UpdateTransactionInTx persists changed fields of a transaction within the
// given scope.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		UPDATE accounts_transactions
		SET account_id = $1, category_id = $2, title = $3, amount = $4, note = $5, updated_at = $6
		WHERE transaction_id = $7;
	`
	var categoryID sql.NullString
	if txn.CategoryID != nil {
		categoryID = sql.NullString{String: *txn.CategoryID, Valid: true}
	}

	tag, err := tx.Exec(ctx, query, txn.AccountID, categoryID, txn.Title, txn.Amount, txn.Note, txn.UpdatedAt, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransactionInTx removes a transaction row within the given scope.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM accounts_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
