package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"expensetracker/internal/apperr"
	"expensetracker/internal/models"
)

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(models.RoleAdmin))

	err := RequireAdmin(models.RoleEmployee)
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = RequireAdmin("")
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRequireOwnershipOrAdmin(t *testing.T) {
	testCases := []struct {
		name        string
		ownerID     uint
		requesterID uint
		role        string
		allowed     bool
	}{
		{"owner accessing own resource", 7, 7, models.RoleEmployee, true},
		{"admin accessing someone else's resource", 7, 3, models.RoleAdmin, true},
		{"admin accessing own resource", 3, 3, models.RoleAdmin, true},
		{"employee accessing someone else's resource", 7, 3, models.RoleEmployee, false},
		{"unknown role accessing someone else's resource", 7, 3, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireOwnershipOrAdmin(tc.ownerID, tc.requesterID, tc.role)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindForbidden))
			}
		})
	}
}
