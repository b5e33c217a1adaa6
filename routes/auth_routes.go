package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/controllers"
	"github.com/matdaan/matdaan_backend/repositories"
)

// RegisterAuthRoutes sets up all authentication and public routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController) {
	passwordController := controllers.NewPasswordController(db, repositories.NewUserRepository(db), authController)

	// Public authentication routes
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/signup/validate-step", authController.ValidateStep)
	e.POST("/api/auth/check-exists", authController.CheckPhoneExists)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/verify-otp", authController.VerifyOTP)
	e.POST("/api/auth/resend-otp", authController.ResendOTP)
	e.GET("/api/auth/validate-token", authController.ValidateToken)
	e.POST("/api/auth/refresh-token", authController.RefreshToken)
	e.POST("/api/auth/remember-me/get", authController.GetRememberedCredentials)
	e.POST("/api/auth/remember-me/remove", authController.RemoveRememberedCredentials)
	e.POST("/api/auth/forget-password", passwordController.ForgetPassword)
	// Reset codes go through the same verifier as registration codes; the
	// stored purpose decides the outcome.
	e.POST("/api/auth/verify-reset-otp", authController.VerifyOTP)
	e.POST("/api/auth/reset-password", passwordController.ResetPassword)
}
