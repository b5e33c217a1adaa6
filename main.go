package main

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/matdaan/matdaan_backend/config"
	"github.com/matdaan/matdaan_backend/controllers"
	"github.com/matdaan/matdaan_backend/middleware"
	"github.com/matdaan/matdaan_backend/repositories"
	"github.com/matdaan/matdaan_backend/routes"
	"github.com/matdaan/matdaan_backend/utils"
	"github.com/matdaan/matdaan_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()

	// Create WebSocket hub for the live results feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		EnableHSTS:     os.Getenv("ENV") == "production",
		ConnectSources: []string{"*"},
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Matdaan Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	// Initialize repositories and session stores
	userRepo := repositories.NewUserRepository(client)
	voteSessions := utils.NewVoteSessions(config.GetRedisClient())

	// Initialize controllers
	authController := controllers.NewAuthController(client, userRepo, voteSessions)
	userController := controllers.NewUserController(client, userRepo)
	electionController := controllers.NewElectionController(voteSessions, wsHub)

	// Register routes
	routes.SetupRoutes(e, client, authController, userController, electionController)

	// Push a live-results frame to connected viewers every 10 seconds
	wsHub.StartResultsFeed(10*time.Second, electionController.ResultsSnapshot)

	// Start the inactive user checker in a goroutine
	go func() {
		for {
			middleware.MarkInactiveUsers(client, 30*time.Minute)
			time.Sleep(5 * time.Minute)
		}
	}()

	// Expired-token housekeeping
	go middleware.CleanupBlacklist()
	go func() {
		for {
			time.Sleep(1 * time.Hour)
			if redisClient := config.GetRedisClient(); redisClient != nil {
				if err := utils.CleanupExpiredRememberMeTokens(redisClient); err != nil {
					log.Printf("Remember me cleanup failed: %v", err)
				}
			}
		}
	}()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
