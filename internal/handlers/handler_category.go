package handlers

import (
	"net/http"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers all category-related routes.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.PATCH("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a category. Names must be unique per user; kind is fixed at creation.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate name"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// getCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// updateCategory godoc
// @Summary Update a category
// @Description Updates name, icon or color. Kind is immutable.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate name"
// @Security BearerAuth
// @Router /categories/{id} [patch]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Removes the category. Its transactions keep existing, uncategorized.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.Status(http.StatusNoContent)
}
