package models

import (
	"time"
)

// Expense statuses. An expense starts as pending and is moved exactly once
// to approved or rejected by an admin; both are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Expense categories, a closed set matching the CHECK constraint on the
// expenses table.
const (
	CategoryTravel         = "travel"
	CategoryMeals          = "meals"
	CategoryOfficeSupplies = "office_supplies"
	CategorySoftware       = "software"
	CategoryTraining       = "training"
	CategoryMarketing      = "marketing"
	CategoryOther          = "other"
)

// Categories lists every valid expense category.
var Categories = []string{
	CategoryTravel,
	CategoryMeals,
	CategoryOfficeSupplies,
	CategorySoftware,
	CategoryTraining,
	CategoryMarketing,
	CategoryOther,
}

// ValidCategory reports whether c is one of the closed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known expense status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Expense is a single reimbursement claim owned by the user who created it.
type Expense struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"index;not null" json:"userId"`
	Amount          float64    `gorm:"not null" json:"amount"`
	Category        string     `gorm:"index;not null" json:"category"`
	Description     string     `gorm:"not null" json:"description"`
	Date            time.Time  `gorm:"index;not null" json:"date"`
	Status          string     `gorm:"index;not null;default:'pending'" json:"status"`
	ReceiptURL      *string    `json:"receiptUrl,omitempty"`
	ApprovedBy      *uint      `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ExpenseFilters is the shared filter set for list and count queries.
// Filters are AND-combined; zero values mean "no filter".
type ExpenseFilters struct {
	UserID    *uint
	Category  string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
