package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// dashboardHandler handles the aggregate monthly view.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Returns the user's balance, accounts, the month's transactions and the derived income/outgo report. Defaults to the current month.
// @Tags dashboard
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()
	if params.Month != nil {
		month = *params.Month
	}
	if params.Year != nil {
		year = *params.Year
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, month, year)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
