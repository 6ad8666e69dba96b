package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/auth"
)

// Context keys populated by AuthRequired.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// AuthRequired validates the Authorization Bearer token and stores the
// caller's identity (id, email, role) in the request context. Requests with
// a missing, malformed, expired or forged token are rejected with 401.
func AuthRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Access token required")
			return
		}

		// Validate Bearer scheme format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, "Bearer token is empty")
			return
		}

		claims, err := auth.ParseToken(tokenString, jwtSecret)
		if err != nil {
			respondUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// CurrentUser returns the authenticated caller's id and role from the
// context. ok is false when AuthRequired did not run on this request.
func CurrentUser(c *gin.Context) (userID uint, role string, ok bool) {
	idValue, exists := c.Get(ContextUserID)
	if !exists {
		return 0, "", false
	}
	id, isUint := idValue.(uint)
	if !isUint {
		return 0, "", false
	}
	roleValue, exists := c.Get(ContextUserRole)
	if !exists {
		return 0, "", false
	}
	roleStr, isString := roleValue.(string)
	if !isString {
		return 0, "", false
	}
	return id, roleStr, true
}
