package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"expensetracker/internal/apperr"
	"expensetracker/internal/models"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := &models.User{Name: "Jane Roe", Email: "jane@example.com", Role: models.RoleEmployee}
	require.NoError(t, user.SetPassword("secret123", bcrypt.MinCost))
	require.NoError(t, svc.Create(user))
	require.NotZero(t, user.ID)

	// Plaintext is never stored.
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))

	byEmail, err := svc.GetByEmail("jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", byID.Email)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	first := &models.User{Name: "Jane", Email: "jane@example.com", Password: "x", Role: models.RoleEmployee}
	require.NoError(t, svc.Create(first))

	second := &models.User{Name: "Impostor", Email: "jane@example.com", Password: "y", Role: models.RoleEmployee}
	err := svc.Create(second)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestUserLookupNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.GetByEmail("nobody@example.com")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.GetByID(404)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
