// controllers/user_controller.go
package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/config"
	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/repositories"
	"github.com/matdaan/matdaan_backend/utils"
)

// UserController contains voter profile logic
type UserController struct {
	DB     *mongo.Client
	logger *log.Logger
	users  *repositories.UserRepository
}

// NewUserController creates a new user controller
func NewUserController(db *mongo.Client, users *repositories.UserRepository) *UserController {
	return &UserController{
		DB:     db,
		logger: log.New(os.Stdout, "[USER] ", log.LstdFlags),
		users:  users,
	}
}

// GetProfile returns the logged-in voter's record with the password stripped.
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

// UpdateProfile changes the mutable contact fields. Identity fields such as
// the EPIC and Aadhar numbers stay fixed after registration.
func (uc *UserController) UpdateProfile(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	var req struct {
		Email    string `json:"email"`
		State    string `json:"state"`
		District string `json:"district"`
		Pincode  string `json:"pincode"`
		Address  string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{}

	if req.Email != "" {
		if res := utils.ValidateEmail(req.Email); !res.Valid {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: res.Message,
			})
		}
		update["email"] = utils.SanitizeInput(req.Email)
	}
	if req.Pincode != "" {
		if res := utils.ValidatePincode(req.Pincode); !res.Valid {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: res.Message,
			})
		}
		update["pincode"] = req.Pincode
	}
	if req.State != "" {
		districts := models.DistrictsForState(req.State)
		if districts == nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Unknown state",
			})
		}
		update["state"] = req.State
		// A state change invalidates the old district unless the new one
		// is supplied alongside it.
		if req.District == "" {
			update["district"] = ""
		}
	}
	if req.District != "" {
		state := req.State
		if state == "" {
			state = user.State
		}
		found := false
		for _, d := range models.DistrictsForState(state) {
			if d == req.District {
				found = true
				break
			}
		}
		if !found {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "District does not belong to the selected state",
			})
		}
		update["district"] = req.District
	}
	if req.Address != "" {
		update["address"] = utils.SanitizeInput(req.Address)
	}

	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No fields to update",
		})
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(uc.DB, "users")
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
		uc.logger.Printf("Failed to update profile for %s: %v", user.ID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
	})
}

// GetEpicQR returns a QR code image of the voter's EPIC number, base64
// encoded for direct use in an <img> tag.
func (uc *UserController) GetEpicQR(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	if user.EpicNumber == "" {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No EPIC number on record",
		})
	}

	qrCode, err := qr.Encode(user.EpicNumber, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code: " + err.Error(),
		})
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code: " + err.Error(),
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code image",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "QR code generated successfully",
		Data: map[string]interface{}{
			"epicNumber": user.EpicNumber,
			"qrCode":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		},
	})
}

// DeleteAccount removes the voter's record and any pending OTP documents.
func (uc *UserController) DeleteAccount(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	otpCollection := config.GetCollection(uc.DB, "phone_otps")
	if _, err := otpCollection.DeleteMany(ctx, bson.M{"phone": user.Phone}); err != nil {
		uc.logger.Printf("Failed to delete OTP documents for %s: %v", user.Phone, err)
	}

	collection := config.GetCollection(uc.DB, "users")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": user.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete account",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	uc.logger.Printf("Deleted account %s", user.ID.Hex())

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Account deleted successfully",
	})
}
