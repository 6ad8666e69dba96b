package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/apperr"
	"expensetracker/internal/auth"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

const dateLayout = "2006-01-02"

// ExpenseController handles HTTP requests related to expenses.
type ExpenseController interface {
	// List returns a filtered, paginated page of expenses.
	List(c *gin.Context)
	// GetByID returns a single expense, subject to ownership checks.
	GetByID(c *gin.Context)
	// Create submits a new expense for the authenticated caller.
	Create(c *gin.Context)
	// Approve transitions a pending expense to approved or rejected.
	Approve(c *gin.Context)
}

type expenseController struct {
	expenses services.ExpenseService
}

// NewExpenseController creates a new instance of ExpenseController
func NewExpenseController(expenses services.ExpenseService) ExpenseController {
	return &expenseController{expenses: expenses}
}

type createExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	ReceiptURL  string  `json:"receiptUrl"`
}

type approveExpenseRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

// List godoc
// @Summary List expenses
// @Description List expenses with filters and pagination. Employees only see their own expenses.
// @Tags expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param startDate query string false "Filter by start date (YYYY-MM-DD)"
// @Param endDate query string false "Filter by end date (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /expenses [get]
func (ec *expenseController) List(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthenticated("User not authenticated"))
		return
	}

	filters, err := parseListFilters(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	// Employees are always scoped to their own records, regardless of
	// anything the request supplied.
	if role != models.RoleAdmin {
		filters.UserID = &userID
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	filters.Limit = limit
	filters.Offset = (page - 1) * limit

	expenses, err := ec.expenses.FindWithFilters(filters)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	total, err := ec.expenses.CountWithFilters(filters)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func parseListFilters(c *gin.Context) (models.ExpenseFilters, error) {
	var filters models.ExpenseFilters

	filters.Category = c.Query("category")
	filters.Status = c.Query("status")

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filters, apperr.Validation("Invalid startDate, expected YYYY-MM-DD")
		}
		filters.StartDate = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filters, apperr.Validation("Invalid endDate, expected YYYY-MM-DD")
		}
		filters.EndDate = &end
	}
	return filters, nil
}

// GetByID godoc
// @Summary Get an expense
// @Description Get a single expense by id. Employees can only access their own expenses.
// @Tags expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (ec *expenseController) GetByID(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthenticated("User not authenticated"))
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	expense, err := ec.expenses.GetByID(id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if err := auth.RequireOwnershipOrAdmin(expense.UserID, userID, role); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Create godoc
// @Summary Create an expense
// @Description Submit a new expense claim. The expense is owned by the caller and starts as pending.
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body createExpenseRequest true "Expense payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /expenses [post]
func (ec *expenseController) Create(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthenticated("User not authenticated"))
		return
	}

	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)

	if req.Amount == 0 || req.Category == "" || req.Description == "" || req.Date == "" {
		apperr.Respond(c, apperr.Validation("Amount, category, description, and date are required"))
		return
	}
	if req.Amount <= 0 {
		apperr.Respond(c, apperr.Validation("Amount must be greater than 0"))
		return
	}
	if !models.ValidCategory(req.Category) {
		apperr.Respond(c, apperr.Validation("Invalid expense category"))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		apperr.Respond(c, apperr.Validation("Invalid date, expected YYYY-MM-DD"))
		return
	}

	now := time.Now()
	if date.After(now) {
		apperr.Respond(c, apperr.Validation("Expense date cannot be in the future"))
		return
	}
	if date.Before(now.AddDate(-1, 0, 0)) {
		apperr.Respond(c, apperr.Validation("Expense date cannot be older than one year"))
		return
	}

	// Owner and status come from the server, never from the payload.
	expense := &models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Status:      models.StatusPending,
	}
	if req.ReceiptURL != "" {
		expense.ReceiptURL = &req.ReceiptURL
	}

	if err := ec.expenses.Create(expense); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"expense": expense,
		"message": "Expense created successfully",
	})
}

// Approve godoc
// @Summary Approve or reject an expense
// @Description Transition a pending expense to approved or rejected. Admin only.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body approveExpenseRequest true "Transition payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{id}/approve [put]
func (ec *expenseController) Approve(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthenticated("User not authenticated"))
		return
	}
	if err := auth.RequireAdmin(role); err != nil {
		apperr.Respond(c, err)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var req approveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	req.RejectionReason = strings.TrimSpace(req.RejectionReason)

	if req.Status != models.StatusApproved && req.Status != models.StatusRejected {
		apperr.Respond(c, apperr.Validation("Valid status (approved/rejected) is required"))
		return
	}
	if req.Status == models.StatusRejected && req.RejectionReason == "" {
		apperr.Respond(c, apperr.Validation("Rejection reason is required when rejecting an expense"))
		return
	}
	if req.Status == models.StatusApproved && req.RejectionReason != "" {
		apperr.Respond(c, apperr.Validation("Rejection reason must not be provided when approving an expense"))
		return
	}

	expense, err := ec.expenses.UpdateStatus(id, req.Status, userID, req.RejectionReason)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expense": expense,
		"message": "Expense " + req.Status + " successfully",
	})
}

func parseIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validation("Invalid expense ID format")
	}
	return uint(id), nil
}
