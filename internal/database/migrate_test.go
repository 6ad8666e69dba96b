package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"expensetracker/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Expense{}))
}

func TestSeedCreatesDefaultUsersOnce(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, Seed(db, bcrypt.MinCost))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.CheckPassword("admin123"))
	assert.NotEqual(t, "admin123", admin.Password)

	var employee models.User
	require.NoError(t, db.Where("email = ?", "john@example.com").First(&employee).Error)
	assert.Equal(t, models.RoleEmployee, employee.Role)

	// Seeding again must not duplicate the accounts.
	require.NoError(t, Seed(db, bcrypt.MinCost))
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSeedDemoExpenses(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db, bcrypt.MinCost))

	require.NoError(t, SeedDemoExpenses(db))

	var count int64
	require.NoError(t, db.Model(&models.Expense{}).Count(&count).Error)
	assert.Greater(t, count, int64(0))

	// All demo expenses belong to the seeded employee and start pending.
	var employee models.User
	require.NoError(t, db.Where("email = ?", "john@example.com").First(&employee).Error)
	var expenses []models.Expense
	require.NoError(t, db.Find(&expenses).Error)
	for _, e := range expenses {
		assert.Equal(t, employee.ID, e.UserID)
		assert.Equal(t, models.StatusPending, e.Status)
	}

	before := count
	require.NoError(t, SeedDemoExpenses(db))
	require.NoError(t, db.Model(&models.Expense{}).Count(&count).Error)
	assert.Equal(t, before, count)
}
