package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/auth"
	"expensetracker/internal/models"
)

var testSecret = []byte("middleware-test-secret")

func issueToken(t *testing.T, role string) string {
	t.Helper()
	user := &models.User{ID: 7, Email: "user@example.com", Role: role}
	token, err := auth.GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, role, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})
	router.GET("/protected", handlers...)
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthRequired(t *testing.T) {
	router := protectedRouter()

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "").Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "Basic abc").Code)
	})

	t.Run("empty token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer ").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer not.a.jwt").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		user := &models.User{ID: 7, Email: "user@example.com", Role: models.RoleEmployee}
		token, err := auth.GenerateToken(user, testSecret, -time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer "+token).Code)
	})

	t.Run("valid token populates context", func(t *testing.T) {
		recorder := get(router, "Bearer "+issueToken(t, models.RoleEmployee))
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"userID": 7, "role": "employee"}`, recorder.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	router := protectedRouter(RequireRole(models.RoleAdmin))

	t.Run("employee is rejected", func(t *testing.T) {
		recorder := get(router, "Bearer "+issueToken(t, models.RoleEmployee))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		recorder := get(router, "Bearer "+issueToken(t, models.RoleAdmin))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("honors an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "caller-supplied-id")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, "caller-supplied-id", recorder.Header().Get("X-Request-ID"))
	})
}
