package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"expensetracker/internal/apperr"
	"expensetracker/internal/models"
)

// ExpenseService provides persistence and aggregate queries over expenses,
// including the pending → approved/rejected state transition.
type ExpenseService interface {
	// Create persists a new expense. The caller is responsible for
	// validation; status is always forced to pending.
	Create(expense *models.Expense) error
	// GetByID returns a single expense or NotFound.
	GetByID(id uint) (*models.Expense, error)
	// FindWithFilters returns a page of expenses matching the filters,
	// newest first.
	FindWithFilters(filters models.ExpenseFilters) ([]models.Expense, error)
	// CountWithFilters counts the expenses FindWithFilters would return
	// with pagination removed.
	CountWithFilters(filters models.ExpenseFilters) (int64, error)
	// UpdateStatus transitions a pending expense to approved or rejected
	// and returns the updated record. Transitions out of a terminal state
	// are rejected.
	UpdateStatus(id uint, status string, approverID uint, rejectionReason string) (*models.Expense, error)
	// GetAnalytics aggregates expenses, scoped to ownerID when non-nil.
	// The status breakdown is only computed for the org-wide view.
	GetAnalytics(ownerID *uint) (*models.Analytics, error)
}

type expenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) ExpenseService {
	return &expenseService{db: db}
}

func (s *expenseService) Create(expense *models.Expense) error {
	expense.Status = models.StatusPending
	if err := s.db.Create(expense).Error; err != nil {
		return apperr.Internal(err, "Failed to create expense")
	}
	return nil
}

func (s *expenseService) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Expense not found")
		}
		return nil, apperr.Internal(err, "Failed to load expense")
	}
	return &expense, nil
}

// applyFilters builds the shared WHERE clause for list and count queries.
// Both must go through here so that counts always match what a list would
// paginate over.
func applyFilters(query *gorm.DB, filters models.ExpenseFilters) *gorm.DB {
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	return query
}

func (s *expenseService) FindWithFilters(filters models.ExpenseFilters) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	query := applyFilters(s.db.Model(&models.Expense{}), filters)

	// The id tiebreaker keeps page boundaries stable when several rows
	// share a creation timestamp.
	query = query.Order("created_at DESC").Order("id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Find(&expenses).Error; err != nil {
		return nil, apperr.Internal(err, "Failed to list expenses")
	}
	return expenses, nil
}

func (s *expenseService) CountWithFilters(filters models.ExpenseFilters) (int64, error) {
	var count int64
	query := applyFilters(s.db.Model(&models.Expense{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperr.Internal(err, "Failed to count expenses")
	}
	return count, nil
}

func (s *expenseService) UpdateStatus(id uint, status string, approverID uint, rejectionReason string) (*models.Expense, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, apperr.Validation("Valid status (approved/rejected) is required")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"approved_by": approverID,
		"updated_at":  now,
	}
	if status == models.StatusApproved {
		updates["approved_at"] = now
	} else {
		updates["rejection_reason"] = rejectionReason
	}

	// The status predicate makes the transition atomic: concurrent
	// approvals of the same expense can only win once.
	result := s.db.Model(&models.Expense{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error, "Failed to update expense status")
	}

	if result.RowsAffected == 0 {
		// Either the expense does not exist or it already left pending.
		if _, err := s.GetByID(id); err != nil {
			return nil, err
		}
		return nil, apperr.Validation("Expense has already been processed")
	}

	return s.GetByID(id)
}

func (s *expenseService) GetAnalytics(ownerID *uint) (*models.Analytics, error) {
	analytics := &models.Analytics{
		CategoryStats:   make([]models.CategoryStats, 0),
		MonthlyStats:    make([]models.MonthlyStats, 0),
		StatusBreakdown: make([]models.StatusStats, 0),
	}

	scoped := func() *gorm.DB {
		query := s.db.Model(&models.Expense{})
		if ownerID != nil {
			query = query.Where("user_id = ?", *ownerID)
		}
		return query
	}

	err := scoped().
		Select("COALESCE(SUM(amount), 0) AS total_expenses, COUNT(*) AS total_count, COALESCE(AVG(amount), 0) AS average_expense").
		Scan(&analytics.Summary).Error
	if err != nil {
		return nil, apperr.Internal(err, "Failed to compute summary analytics")
	}

	err = scoped().
		Select("category, SUM(amount) AS total_amount, COUNT(*) AS count, AVG(amount) AS average_amount").
		Group("category").
		Order("total_amount DESC").
		Scan(&analytics.CategoryStats).Error
	if err != nil {
		return nil, apperr.Internal(err, "Failed to compute category analytics")
	}

	monthly, err := s.monthlyStats(ownerID)
	if err != nil {
		return nil, err
	}
	analytics.MonthlyStats = monthly

	if ownerID == nil {
		err = s.db.Model(&models.Expense{}).
			Select("status, COUNT(*) AS count, SUM(amount) AS total_amount").
			Group("status").
			Scan(&analytics.StatusBreakdown).Error
		if err != nil {
			return nil, apperr.Internal(err, "Failed to compute status analytics")
		}
	}

	return analytics, nil
}

// monthlyStats buckets the trailing twelve months of expenses by calendar
// month. Bucketing happens in Go because sqlite and postgres have no shared
// month-truncation SQL.
func (s *expenseService) monthlyStats(ownerID *uint) ([]models.MonthlyStats, error) {
	cutoff := time.Now().AddDate(0, -12, 0)

	query := s.db.Model(&models.Expense{}).
		Select("date, amount").
		Where("date >= ?", cutoff)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	var rows []struct {
		Date   time.Time
		Amount float64
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperr.Internal(err, "Failed to compute monthly analytics")
	}

	buckets := make(map[string]*models.MonthlyStats)
	for _, row := range rows {
		month := row.Date.Format("2006-01")
		bucket, ok := buckets[month]
		if !ok {
			bucket = &models.MonthlyStats{Month: month}
			buckets[month] = bucket
		}
		bucket.TotalAmount += row.Amount
		bucket.Count++
	}

	stats := make([]models.MonthlyStats, 0, len(buckets))
	for _, bucket := range buckets {
		stats = append(stats, *bucket)
	}
	// Most recent month first; "YYYY-MM" sorts lexicographically.
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Month > stats[j].Month
	})
	return stats, nil
}
