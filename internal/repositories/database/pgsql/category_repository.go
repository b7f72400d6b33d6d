package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, user_id, kind, name, icon, color, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.CategoryID,
		&category.UserID,
		&category.Kind,
		&category.Name,
		&category.Icon,
		&category.Color,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category row: %w", err)
	}
	return &category, nil
}

// FindCategoryByID retrieves a specific category by its unique identifier.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM user_categories WHERE category_id = $1;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return category, nil
}

// FindCategoryByName retrieves a user's category by name, matched
// case-insensitively.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM user_categories WHERE user_id = $1 AND LOWER(name) = LOWER($2);`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return category, nil
}

// FindCategoriesByIDs retrieves multiple categories keyed by ID.
func (r *PgxCategoryRepository) FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error) {
	result := make(map[string]domain.Category)
	if len(categoryIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM user_categories WHERE category_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result[category.CategoryID] = *category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return result, nil
}

// ListCategoriesByUser retrieves every category owned by a user, income
// categories first, then by name.
func (r *PgxCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM user_categories WHERE user_id = $1 ORDER BY kind ASC, name ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

const insertCategoryQuery = `
	INSERT INTO user_categories (category_id, user_id, kind, name, icon, color, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.Pool.Exec(ctx, insertCategoryQuery,
		category.CategoryID,
		category.UserID,
		category.Kind,
		category.Name,
		category.Icon,
		category.Color,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

// SaveCategoriesInTx persists several categories within the given scope.
func (r *PgxCategoryRepository) SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error {
	batch := &pgx.Batch{}
	for _, category := range categories {
		batch.Queue(insertCategoryQuery,
			category.CategoryID,
			category.UserID,
			category.Kind,
			category.Name,
			category.Icon,
			category.Color,
			category.CreatedAt,
			category.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range categories {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: duplicate category name", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save categories batch: %w", err)
		}
	}
	return nil
}

// UpdateCategory updates a category's name, icon and color. Kind is immutable.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE user_categories
		SET name = $1, icon = $2, color = $3, updated_at = $4
		WHERE category_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, category.Name, category.Icon, category.Color, category.UpdatedAt, category.CategoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Transactions referencing it keep
// existing with a NULL category (FK ON DELETE SET NULL).
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM user_categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
