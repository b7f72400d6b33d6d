package services

import (
	"context"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
)

// CategorySvcFacade defines category management operations.
type CategorySvcFacade interface {
	// CreateCategory creates a category. Name must be unique among the
	// user's categories, case-insensitively.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// GetCategoryByID retrieves one of the user's categories.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all of the user's categories.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// UpdateCategory applies changes. Kind is immutable and cannot be set.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes the category; transactions keep existing
	// without a category.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}
