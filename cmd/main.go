package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "expensetracker/docs" // Import generated docs
	"expensetracker/internal/config"
	"expensetracker/internal/controllers"
	"expensetracker/internal/database"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
)

// @title Expense Tracker API
// @version 1.0
// @description Organizational expense tracking: employees submit claims, admins approve or reject them.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()

	// Initialize database connection, schema and seed data
	db := setupDatabase(configuration)

	// Initialize services and controllers
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)

	tokenTTL := time.Duration(configuration.TokenTTLHours) * time.Hour
	authController := controllers.NewAuthController(userService, configuration.JWTSecret, tokenTTL, configuration.BcryptCost)
	expenseController := controllers.NewExpenseController(expenseService)
	analyticsController := controllers.NewAnalyticsController(expenseService)

	// Initialize Gin router
	router := setupRouter(configuration, authController, expenseController, analyticsController)

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	if err := router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects to the configured database and runs the idempotent
// migration and seeding steps exactly once, at bootstrap.
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.Connect(database.FromAppConfig(conf))
	checkPanicErr(err)

	checkPanicErr(database.Migrate(db))
	checkPanicErr(database.Seed(db, conf.BcryptCost))
	if conf.SeedDemoData {
		checkPanicErr(database.SeedDemoExpenses(db))
	}
	return db
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter(
	conf *config.Config,
	authController *controllers.AuthController,
	expenseController controllers.ExpenseController,
	analyticsController *controllers.AnalyticsController,
) *gin.Engine {
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	jwtSecret := []byte(conf.JWTSecret)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authController.Register)
			authRoutes.POST("/login", authController.Login)
		}

		// Everything below requires a valid bearer token.
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(jwtSecret))
		{
			protected.GET("/expenses", expenseController.List)
			protected.POST("/expenses", expenseController.Create)
			protected.GET("/expenses/:id", expenseController.GetByID)
			protected.GET("/analytics", analyticsController.Get)

			adminRoutes := protected.Group("")
			adminRoutes.Use(middleware.RequireRole("admin"))
			{
				adminRoutes.PUT("/expenses/:id/approve", expenseController.Approve)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "expense-tracker-api",
	})
}
