// controllers/password_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/registration"
	"github.com/matdaan/matdaan_backend/repositories"
	"github.com/matdaan/matdaan_backend/utils"
)

// PasswordController handles password reset functionality
type PasswordController struct {
	DB     *mongo.Client
	logger *log.Logger
	users  *repositories.UserRepository
	auth   *AuthController
}

// NewPasswordController creates a new password controller. It shares the
// auth controller's live OTP session registry so the same countdown and
// resend rules apply to reset codes.
func NewPasswordController(db *mongo.Client, users *repositories.UserRepository, auth *AuthController) *PasswordController {
	return &PasswordController{
		DB:     db,
		logger: log.New(os.Stdout, "[PASSWORD] ", log.LstdFlags),
		users:  users,
		auth:   auth,
	}
}

// ForgetPassword starts the reset flow: an OTP is issued against the phone
// number on file, exactly like a registration OTP but with a reset purpose.
func (pc *PasswordController) ForgetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ForgetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	req.Phone = utils.SanitizeInput(req.Phone)
	if res := utils.ValidatePhone(req.Phone); !res.Valid {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number must be 10 digits.",
		})
	}

	user, err := pc.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "No account associated with this phone number",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check user",
		})
	}

	sess := registration.NewOTPSession(models.OTPPurposePasswordReset, user.Phone, user.ID)
	if err := pc.auth.storeOTPSession(ctx, sess); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store OTP",
		})
	}

	pc.logger.Printf("Generated OTP for phone %s (password_reset)", user.Phone)
	if err := utils.SendOTPViaSMS(user.Phone, sess.Code()); err != nil {
		pc.logger.Printf("OTP delivery failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send OTP",
		})
	}

	// Best effort: mirror the code to the account email when SMTP is
	// configured. The SMS path is authoritative.
	if err := sendResetOTPByEmail(user.Email, user.FullName, sess.Code()); err != nil {
		pc.logger.Printf("Reset OTP email not sent: %v", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset OTP sent successfully",
		Data: map[string]interface{}{
			"phone":       maskPhone(user.Phone),
			"email":       maskEmail(user.Email),
			"userId":      user.ID.Hex(),
			"resendAfter": registration.ResendWindow,
		},
	})
}

// ResetPassword sets a new password for a user holding a valid reset token
// issued by OTP verification.
func (pc *PasswordController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	req.Phone = utils.SanitizeInput(req.Phone)
	if req.Phone == "" || req.ResetToken == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone, reset token, and new password are required",
		})
	}

	// The new password has to pass the same rules as signup.
	if res := utils.ValidatePassword(req.NewPassword); !res.Valid {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: res.Message,
		})
	}
	if res := utils.ValidateConfirmPassword(req.NewPassword, req.ConfirmPassword); !res.Valid {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: res.Message,
		})
	}

	user, err := pc.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid or expired reset token",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve user",
		})
	}

	if user.ResetPasswordToken == "" || user.ResetPasswordToken != req.ResetToken {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid or expired reset token",
		})
	}
	if user.ResetTokenExpiresAt.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Reset token has expired. Please request a new password reset",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	if err := pc.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset successfully",
	})
}

// sendResetOTPByEmail mails the OTP code via SMTP. Returns an error when
// SMTP is not configured; callers treat that as a skipped delivery.
func sendResetOTPByEmail(email, name, otp string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")

	if smtpHost == "" || smtpPortStr == "" || smtpUser == "" || smtpPass == "" || fromEmail == "" {
		return fmt.Errorf("missing SMTP configuration")
	}

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}

	subject := "Password Reset OTP"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Reset Your Password</h2>
			<p>Hello %s,</p>
			<p>You have requested to reset your password. Please use the following OTP code to verify your request:</p>
			<h3 style="background-color: #f0f0f0; padding: 10px; font-size: 24px; letter-spacing: 5px; text-align: center;">%s</h3>
			<p>This code will expire in 10 minutes.</p>
			<p>If you did not request a password reset, please ignore this email or contact support if you have concerns.</p>
			<p>Thank you,<br>The Matdaan Team</p>
		</body>
		</html>
	`, name, otp)

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// maskEmail partially masks an email address for privacy
func maskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	name := parts[0]
	domain := parts[1]

	if len(name) <= 2 {
		return name[:1] + "***@" + domain
	}

	return name[:2] + strings.Repeat("*", len(name)-2) + "@" + domain
}

// maskPhone keeps only the last two digits visible
func maskPhone(phone string) string {
	if len(phone) <= 2 {
		return phone
	}
	return strings.Repeat("*", len(phone)-2) + phone[len(phone)-2:]
}
