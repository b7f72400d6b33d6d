package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
// Kind is fixed at creation.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Kind  domain.CategoryKind `json:"kind" binding:"required,oneof=income outgo"`
	Icon  string              `json:"icon" binding:"required,min=1,max=10"`
	Color string              `json:"color" binding:"required,hexcolor"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Kind is immutable after creation and is deliberately absent here.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Icon  *string `json:"icon" binding:"omitempty,min=1,max=10"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Kind       domain.CategoryKind `json:"kind"`
	Name       string              `json:"name"`
	Icon       string              `json:"icon"`
	Color      string              `json:"color"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Kind:       cat.Kind,
		Name:       cat.Name,
		Icon:       cat.Icon,
		Color:      cat.Color,
		CreatedAt:  cat.CreatedAt,
		UpdatedAt:  cat.UpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
