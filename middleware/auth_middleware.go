// middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/config"
	"github.com/matdaan/matdaan_backend/models"
)

// RequireVerifiedPhone gates voting endpoints behind a completed OTP
// verification: the session's account must have phoneVerified set.
func RequireVerifiedPhone(db *mongo.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserIDFromToken(c)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			objID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid session",
				})
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			var user models.User
			err = config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "User not found",
				})
			}

			if !user.PhoneVerified {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Phone number is not verified",
				})
			}

			return next(c)
		}
	}
}
