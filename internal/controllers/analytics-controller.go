package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/apperr"
	"expensetracker/internal/auth"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
)

// AnalyticsController serves aggregate expense statistics.
type AnalyticsController struct {
	expenses services.ExpenseService
}

func NewAnalyticsController(expenses services.ExpenseService) *AnalyticsController {
	return &AnalyticsController{expenses: expenses}
}

// Get godoc
// @Summary Expense analytics
// @Description Aggregate statistics. Employees get their own numbers; admins get the organization-wide view including a status breakdown.
// @Tags analytics
// @Produce json
// @Success 200 {object} models.Analytics
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /analytics [get]
func (ctl *AnalyticsController) Get(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthenticated("User not authenticated"))
		return
	}

	// Admins see the organization; everyone else is scoped to themselves.
	ownerID := &userID
	if err := auth.RequireAdmin(role); err == nil {
		ownerID = nil
	}

	analytics, err := ctl.expenses.GetAnalytics(ownerID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
