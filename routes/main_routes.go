package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/controllers"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController, userController *controllers.UserController, electionController *controllers.ElectionController) {
	RegisterAuthRoutes(e, db, authController)
	RegisterUserRoutes(e, db, userController, authController)
	RegisterElectionRoutes(e, db, electionController)
}
