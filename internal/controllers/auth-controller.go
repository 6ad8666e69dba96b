package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/apperr"
	"expensetracker/internal/auth"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// AuthController handles registration and login.
type AuthController struct {
	users      services.UserService
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthController(users services.UserService, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthController {
	return &AuthController{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role is accepted for payload compatibility but ignored: every
	// self-registration is created as employee. Admins are provisioned
	// out of band.
	Role string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Description Create a new employee account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		apperr.Respond(c, apperr.Validation("Name, email, and password are required"))
		return
	}
	if len(req.Password) < 6 {
		apperr.Respond(c, apperr.Validation("Password must be at least 6 characters long"))
		return
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.RoleEmployee,
	}
	if err := user.SetPassword(req.Password, ac.bcryptCost); err != nil {
		apperr.Respond(c, apperr.Internal(err, "Failed to create user"))
		return
	}

	if err := ac.users.Create(user); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "User created successfully",
	})
}

// Login godoc
// @Summary Log in
// @Description Validate credentials and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation("Invalid request body"))
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		apperr.Respond(c, apperr.Validation("Email and password are required"))
		return
	}

	user, err := ac.users.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Same response whether the account exists or the password is
		// wrong.
		apperr.Respond(c, apperr.Unauthenticated("Invalid credentials"))
		return
	}

	token, err := auth.GenerateToken(user, ac.jwtSecret, ac.tokenTTL)
	if err != nil {
		apperr.Respond(c, apperr.Internal(err, "Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
