package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a category. Names are unique per user,
// case-insensitively; kind is fixed for the category's lifetime.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, req.Kind)
	}

	if _, err := s.categoryRepo.FindCategoryByName(ctx, userID, req.Name); err == nil {
		return nil, fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, req.Name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check category name uniqueness")
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Kind:       req.Kind,
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves one of the user's categories.
func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

// ListCategories retrieves all of the user's categories.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, err
	}
	return categories, nil
}

// UpdateCategory renames or restyles a category. Kind is immutable.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		existing, err := s.categoryRepo.FindCategoryByName(ctx, userID, *req.Name)
		if err == nil && existing.CategoryID != categoryID {
			return nil, fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, *req.Name)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check category name uniqueness")
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category. Transactions referencing it live on
// with no category; no balance changes, so no recalculation.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	if _, err := s.GetCategoryByID(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
