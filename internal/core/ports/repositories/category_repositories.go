package repositories

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a user's category by name, matched
	// case-insensitively. Returns apperrors.ErrNotFound when absent.
	FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error)

	// FindCategoriesByIDs retrieves multiple categories keyed by ID.
	FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)

	// ListCategoriesByUser retrieves every category owned by a user.
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategoriesInTx persists several categories within the given scope
	// (used to seed a new user's default category set).
	SaveCategoriesInTx(ctx context.Context, tx pgx.Tx, categories []domain.Category) error

	// UpdateCategory updates a category's name, icon and color. Kind is
	// immutable and is never written by updates.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Transactions referencing it keep
	// existing with a NULL category.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
