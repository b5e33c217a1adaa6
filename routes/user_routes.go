package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/controllers"
	"github.com/matdaan/matdaan_backend/middleware"
)

// RegisterUserRoutes sets up all user-related protected routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Client, userController *controllers.UserController, authController *controllers.AuthController) {
	// Protected routes group
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.ActivityTracker(db))
	r.Use(middleware.RequireVerifiedPhone(db))

	r.GET("/user/profile", userController.GetProfile)
	r.PUT("/user/profile", userController.UpdateProfile)
	r.GET("/user/epic-qr", userController.GetEpicQR)
	r.DELETE("/user", userController.DeleteAccount)

	r.POST("/auth/logout", authController.Logout)
}
