package database

import (
	"time"

	"gorm.io/gorm"

	"expensetracker/internal/models"
)

// Migrate brings the schema up to date. It is idempotent and is called
// exactly once by the process bootstrap.
func Migrate(db *gorm.DB) error {
	log.Info("Running schema migration")
	return db.AutoMigrate(&models.User{}, &models.Expense{})
}

// Seed creates the default admin and demo employee accounts when the users
// table is empty. Running it again is a no-op.
func Seed(db *gorm.DB, bcryptCost int) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("Users already present, skipping seed")
		return nil
	}

	log.Info("Seeding default users")
	seedUsers := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin User", "admin@example.com", "admin123", models.RoleAdmin},
		{"John Doe", "john@example.com", "employee123", models.RoleEmployee},
	}
	for _, su := range seedUsers {
		user := models.User{Name: su.name, Email: su.email, Role: su.role}
		if err := user.SetPassword(su.password, bcryptCost); err != nil {
			return err
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	log.Info("Default users created")
	return nil
}

// SeedDemoExpenses inserts a handful of sample expenses for local
// development. Like Seed, it only runs against an empty table.
func SeedDemoExpenses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Expense{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("Expenses already present, skipping demo seed")
		return nil
	}

	var employee models.User
	if err := db.Where("role = ?", models.RoleEmployee).First(&employee).Error; err != nil {
		// Nothing to attach demo data to.
		return nil
	}

	log.Info("Seeding demo expenses")
	now := time.Now()
	demo := []models.Expense{
		{UserID: employee.ID, Amount: 42.50, Category: models.CategoryMeals, Description: "Team lunch", Date: now.AddDate(0, 0, -3), Status: models.StatusPending},
		{UserID: employee.ID, Amount: 260.00, Category: models.CategoryTravel, Description: "Train tickets", Date: now.AddDate(0, -1, 0), Status: models.StatusPending},
		{UserID: employee.ID, Amount: 99.99, Category: models.CategorySoftware, Description: "IDE license", Date: now.AddDate(0, -2, 0), Status: models.StatusPending},
	}
	for i := range demo {
		if err := db.Create(&demo[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
