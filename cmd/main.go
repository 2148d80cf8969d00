package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/wanderly/travel-api/docs" // Import generated docs
	"github.com/wanderly/travel-api/internal/auth"
	"github.com/wanderly/travel-api/internal/config"
	"github.com/wanderly/travel-api/internal/controllers"
	"github.com/wanderly/travel-api/internal/database"
	"github.com/wanderly/travel-api/internal/middleware"
	"github.com/wanderly/travel-api/internal/models"
	"github.com/wanderly/travel-api/internal/services"
)

var (
	db                  *gorm.DB
	configuration       *config.Config
	userService         services.UserService
	messageService      services.MessageService
	tokenIssuer         *auth.TokenIssuer
	authController      *controllers.AuthController
	contactController   *controllers.ContactController
	dashboardController *controllers.DashboardController
)

// @title Travel Agency API
// @version 1.0
// @description Auth and contact-messaging API for the travel-agency site
// @host localhost:8080
// @BasePath /
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
	configuration = loadConfig()

	// Initialize database connection and seed the default admin
	setupDatabase(configuration)

	// Initialize services and controllers
	tokenIssuer = auth.NewTokenIssuer(configuration.JWTSecret, auth.TokenTTL)
	userService = services.NewUserService(db)
	messageService = services.NewMessageService(db)
	authController = controllers.NewAuthController(userService, tokenIssuer)
	contactController = controllers.NewContactController(messageService)
	dashboardController = controllers.NewDashboardController(messageService)

	// The seed runs once per process start, before any request is served.
	if err := userService.EnsureDefaultAdmin(configuration.AdminName, configuration.AdminEmail, configuration.AdminPassword); err != nil {
		log.WithError(err).Fatal("Default admin seed failed")
	}

	// Initialize Gin router
	router := setupRouter()

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
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase opens the datastore and migrates the schema
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	checkPanicErr(db.AutoMigrate(&models.User{}, &models.Message{}))
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter() *gin.Engine {
	router := gin.Default()

	// Browser clients come from the configured frontend origin. The policy
	// itself is off-the-shelf; only the origin is ours to configure.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{configuration.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authController.Signup)
			authRoutes.POST("/login", authController.Login)
		}

		// Contact accepts guests; a valid token only links the submission.
		api.POST("/contact", middleware.OptionalJWTAuth(tokenIssuer, userService), contactController.Submit)

		// Dashboard routes require a verified identity. Admin routes
		// additionally declare their required role; handlers never
		// re-check it.
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.JWTAuth(tokenIssuer, userService))
		{
			dashboard.GET("/messages", dashboardController.ListOwnMessages)

			admin := dashboard.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/admin/messages", dashboardController.ListPendingMessages)
				admin.PATCH("/reply/:id", dashboardController.ReplyToMessage)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// rootHandler responds to the bare probe used by uptime checks
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
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
		"service":   "travel-api",
	})
}
