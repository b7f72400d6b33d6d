package handlers

import (
	"net/http"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests for the authenticated user's profile.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PATCH("/me", h.updateMe)
		users.DELETE("/me", h.deleteMe)
	}
}

// getMe godoc
// @Summary Get the authenticated user
// @Description Returns the authenticated user's profile and cached balance.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update the authenticated user
// @Description Updates profile fields. The balance is derived and cannot be set.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteMe godoc
// @Summary Delete the authenticated user
// @Description Removes the user and all of their accounts, categories and transactions.
// @Tags users
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.Status(http.StatusNoContent)
}
