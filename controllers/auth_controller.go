package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/config"
	"github.com/matdaan/matdaan_backend/middleware"
	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/registration"
	"github.com/matdaan/matdaan_backend/repositories"
	"github.com/matdaan/matdaan_backend/utils"
)

const otpTTL = 10 * time.Minute

// AuthController contains authentication logic
type AuthController struct {
	DB           *mongo.Client
	logger       *log.Logger
	users        *repositories.UserRepository
	voteSessions *utils.VoteSessions

	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.RWMutex

	// Live OTP sessions keyed by phone number. The session drives the resend
	// countdown and holds the entered-code buffer; the phone_otps collection
	// is the durable copy that survives restarts.
	otpSessions   map[string]*otpSessionEntry
	otpSessionsMu sync.Mutex
}

type otpSessionEntry struct {
	session   *registration.OTPSession
	createdAt time.Time
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client, users *repositories.UserRepository, voteSessions *utils.VoteSessions) *AuthController {
	ac := &AuthController{
		DB:           db,
		logger:       log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		users:        users,
		voteSessions: voteSessions,
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
		otpSessions: make(map[string]*otpSessionEntry),
	}

	go ac.runOTPCountdown()
	go ac.startOTPCleanupRoutine()
	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

// runOTPCountdown ticks every live OTP session once per second so resend
// becomes available exactly when the 30-second window ends.
func (ac *AuthController) runOTPCountdown() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		ac.otpSessionsMu.Lock()
		for _, entry := range ac.otpSessions {
			entry.session.Tick()
		}
		ac.otpSessionsMu.Unlock()
	}
}

func (ac *AuthController) startOTPCleanupRoutine() {
	for {
		time.Sleep(5 * time.Minute)

		// Drop sessions whose durable OTP document has expired anyway.
		cutoff := time.Now().Add(-otpTTL)
		ac.otpSessionsMu.Lock()
		for phone, entry := range ac.otpSessions {
			if entry.createdAt.Before(cutoff) {
				delete(ac.otpSessions, phone)
			}
		}
		ac.otpSessionsMu.Unlock()

		if err := ac.cleanupExpiredOTPs(); err != nil {
			ac.logger.Printf("OTP cleanup failed: %v", err)
		}
	}
}

func (ac *AuthController) cleanupExpiredOTPs() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(ac.DB, "phone_otps")
	_, err := collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": time.Now()}})
	return err
}

func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(30 * time.Minute)
		cutoff := time.Now().Add(-30 * time.Minute)
		ac.loginAttemptsMu.Lock()
		for identifier, attempts := range ac.loginAttempts {
			if attempts.lastAttempt.Before(cutoff) {
				delete(ac.loginAttempts, identifier)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}

// sendOTP delivers the code. The demo has no out-of-band channel: the stub
// logs it.
func (ac *AuthController) sendOTP(phone, otp string) error {
	return utils.SendOTPViaSMS(phone, otp)
}

// fieldsFromRequest maps the signup payload onto the wizard's raw fields.
// Age is left blank; SelectDOB derives it.
func fieldsFromRequest(req models.SignupRequest) registration.Fields {
	return registration.Fields{
		FullName:        utils.SanitizeInput(req.FullName),
		EpicNumber:      utils.SanitizeInput(req.EpicNumber),
		FatherName:      utils.SanitizeInput(req.FatherName),
		Gender:          utils.SanitizeInput(req.Gender),
		Phone:           utils.SanitizeInput(req.Phone),
		Email:           utils.SanitizeInput(req.Email),
		AadharNumber:    utils.SanitizeInput(req.AadharNumber),
		State:           utils.SanitizeInput(req.State),
		District:        utils.SanitizeInput(req.District),
		Pincode:         utils.SanitizeInput(req.Pincode),
		Address:         utils.SanitizeInput(req.Address),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
}

// Signup handler. The client already walked the three-step form; the server
// replays the same wizard over the submitted values so nothing invalid can
// slip past a tampered client.
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Missing required fields",
		})
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Date of birth must be in YYYY-MM-DD format",
		})
	}

	form := registration.NewForm()
	form.SetFields(fieldsFromRequest(req))
	form.SelectDOB(dob)

	// Walk the wizard: Next from step 1 and 2, then submit from step 3.
	for form.Step() < registration.StepCredentials {
		if err := form.Next(); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Please fill in all required fields correctly.",
				Data:    form.FieldErrors(),
			})
		}
	}
	if !form.StepValid() {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Please fill in all required fields correctly.",
			Data:    form.FieldErrors(),
		})
	}

	ctx := context.Background()
	fields := form.Fields()

	// Phone number is the natural key; reject duplicates before inserting.
	if _, err := ac.users.FindByPhone(ctx, fields.Phone); err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Phone number already registered",
		})
	}

	userCollection := config.GetCollection(ac.DB, "users")
	var existing models.User
	if err := userCollection.FindOne(ctx, bson.M{"email": fields.Email}).Decode(&existing); err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Email already exists",
		})
	}

	sess, err := form.Submit(ctx, ac.users)
	if err != nil {
		ac.logger.Printf("Signup insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save user data. Please try again.",
		})
	}

	if err := ac.storeOTPSession(ctx, sess); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store OTP",
		})
	}

	ac.logger.Printf("Generated OTP for phone %s (registration)", sess.Phone)
	if err := ac.sendOTP(sess.Phone, sess.Code()); err != nil {
		ac.logger.Printf("OTP delivery failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send OTP",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration submitted. Verify the OTP sent to your phone.",
		Data: map[string]interface{}{
			"userId":       sess.UserID.Hex(),
			"resendAfter":  registration.ResendWindow,
			"otpExpiresIn": int(otpTTL.Seconds()),
		},
	})
}

// storeOTPSession replaces any pending OTP for the phone, writes the durable
// document, registers the live session, and opens the resend window.
func (ac *AuthController) storeOTPSession(ctx context.Context, sess *registration.OTPSession) error {
	otpCollection := config.GetCollection(ac.DB, "phone_otps")

	if _, err := otpCollection.DeleteMany(ctx, bson.M{"phone": sess.Phone}); err != nil {
		ac.logger.Printf("Failed to delete existing OTPs: %v", err)
	}

	otpDoc := models.PhoneOTP{
		Phone:     sess.Phone,
		OTP:       sess.Code(),
		Purpose:   sess.Purpose,
		UserID:    sess.UserID,
		ExpiresAt: time.Now().Add(otpTTL),
		Verified:  false,
	}
	if _, err := otpCollection.InsertOne(ctx, otpDoc); err != nil {
		return err
	}

	ac.otpSessionsMu.Lock()
	ac.otpSessions[sess.Phone] = &otpSessionEntry{session: sess, createdAt: time.Now()}
	ac.otpSessionsMu.Unlock()

	if err := utils.MarkResendWindow(sess.Phone, registration.ResendWindow*time.Second, config.GetRedisClient()); err != nil {
		ac.logger.Printf("Failed to mark resend window: %v", err)
	}

	return nil
}

// ValidateStep runs one wizard step's validation for the client form, so the
// app can gate its Next button with the server's rules.
func (ac *AuthController) ValidateStep(c echo.Context) error {
	var req models.ValidateStepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if req.Step < int(registration.StepPersonal) || req.Step > int(registration.StepCredentials) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Step must be between 1 and 3",
		})
	}

	fields := registration.Fields{
		FullName:        req.Fields["fullName"],
		EpicNumber:      req.Fields["epicNumber"],
		Age:             req.Fields["age"],
		DateOfBirth:     req.Fields["dateOfBirth"],
		FatherName:      req.Fields["fatherName"],
		Gender:          req.Fields["gender"],
		Phone:           req.Fields["phone"],
		Email:           req.Fields["email"],
		AadharNumber:    req.Fields["aadharNumber"],
		State:           req.Fields["state"],
		District:        req.Fields["district"],
		Pincode:         req.Fields["pincode"],
		Address:         req.Fields["address"],
		Password:        req.Fields["password"],
		ConfirmPassword: req.Fields["confirmPassword"],
	}

	step := registration.Step(req.Step)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Step validated",
		Data: models.ValidateStepResponse{
			StepValid: registration.StepValid(step, fields),
			Errors:    registration.FieldErrors(fields),
		},
	})
}

// VerifyOTP verifies the entered code. For registration it marks the phone
// verified; for a password reset it hands back a one-hour reset token.
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number and a 6-digit OTP are required",
		})
	}

	req.Phone = utils.SanitizeInput(req.Phone)
	req.OTP = utils.SanitizeInput(req.OTP)

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if err := utils.ValidateOTPAttempts(req.Phone, redisClient); err != nil {
			return c.JSON(http.StatusTooManyRequests, models.Response{
				Status:  http.StatusTooManyRequests,
				Message: "Too many OTP attempts. Please try again later.",
			})
		}
	}

	ctx := context.Background()
	otpCollection := config.GetCollection(ac.DB, "phone_otps")

	var otpDoc models.PhoneOTP
	err := otpCollection.FindOne(ctx, bson.M{"phone": req.Phone, "verified": false}).Decode(&otpDoc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "No OTP request found. Please request a new OTP",
			})
		}
		ac.logger.Printf("Database error during OTP verification: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if time.Now().After(otpDoc.ExpiresAt) {
		ac.logger.Printf("Expired OTP for phone: %s", req.Phone)
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "OTP expired",
		})
	}

	// Feed the entered characters through the live session buffer when we
	// still have one; fall back to the durable document after a restart.
	sess := ac.lookupOTPSession(req.Phone)
	var matched bool
	if sess != nil {
		sess.SetEntered(req.OTP)
		matched = sess.Verify()
	} else {
		matched = req.OTP == otpDoc.OTP
	}

	if !matched {
		// Buffer is kept as entered; the user corrects and retries.
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid OTP. Please try again.",
		})
	}

	switch otpDoc.Purpose {
	case models.OTPPurposePasswordReset:
		resetToken := uuid.NewString()
		if err := ac.users.SetResetToken(ctx, otpDoc.UserID, resetToken, time.Now().Add(1*time.Hour)); err != nil {
			// Recoverable: the user may retry Verify.
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to update reset token",
			})
		}

		ac.markOTPVerified(ctx, req.Phone)

		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "OTP verified successfully",
			Data: map[string]interface{}{
				"resetToken": resetToken,
				"phone":      req.Phone,
			},
		})

	default: // registration
		if err := ac.users.MarkPhoneVerified(ctx, otpDoc.UserID); err != nil {
			ac.logger.Printf("Failed to update verification status: %v", err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to update verification status. Please try again.",
			})
		}

		ac.markOTPVerified(ctx, req.Phone)

		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Account created successfully! Please login to continue.",
		})
	}
}

func (ac *AuthController) lookupOTPSession(phone string) *registration.OTPSession {
	ac.otpSessionsMu.Lock()
	defer ac.otpSessionsMu.Unlock()
	if entry, ok := ac.otpSessions[phone]; ok {
		return entry.session
	}
	return nil
}

// markOTPVerified flags the durable document as consumed and drops the live
// session. Verify and Resend only match unverified documents, so a consumed
// code cannot be replayed; the TTL index removes the document later.
func (ac *AuthController) markOTPVerified(ctx context.Context, phone string) {
	otpCollection := config.GetCollection(ac.DB, "phone_otps")
	update := bson.M{"$set": bson.M{"verified": true}}
	if _, err := otpCollection.UpdateMany(ctx, bson.M{"phone": phone}, update); err != nil {
		ac.logger.Printf("Failed to mark OTP verified: %v", err)
	}

	ac.otpSessionsMu.Lock()
	delete(ac.otpSessions, phone)
	ac.otpSessionsMu.Unlock()
}

// ResendOTP regenerates the code once the 30-second countdown has ended.
func (ac *AuthController) ResendOTP(c echo.Context) error {
	var req models.ResendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number is required",
		})
	}

	req.Phone = utils.SanitizeInput(req.Phone)

	ctx := context.Background()
	otpCollection := config.GetCollection(ac.DB, "phone_otps")

	var otpDoc models.PhoneOTP
	err := otpCollection.FindOne(ctx, bson.M{"phone": req.Phone, "verified": false}).Decode(&otpDoc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "No OTP request found. Please request a new OTP",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	sess := ac.lookupOTPSession(req.Phone)
	if sess != nil {
		if err := sess.Resend(); err != nil {
			return c.JSON(http.StatusTooManyRequests, models.Response{
				Status:  http.StatusTooManyRequests,
				Message: "Resend is not available yet",
				Data:    map[string]interface{}{"retryAfter": sess.Remaining()},
			})
		}
	} else {
		// No live session (e.g. after a restart): honor the shared window.
		remaining, err := utils.ResendRemaining(req.Phone, config.GetRedisClient())
		if err != nil {
			ac.logger.Printf("Failed to check resend window: %v", err)
		}
		if remaining > 0 {
			return c.JSON(http.StatusTooManyRequests, models.Response{
				Status:  http.StatusTooManyRequests,
				Message: "Resend is not available yet",
				Data:    map[string]interface{}{"retryAfter": int(remaining.Seconds())},
			})
		}
		sess = registration.NewOTPSession(otpDoc.Purpose, otpDoc.Phone, otpDoc.UserID)
	}

	if err := ac.storeOTPSession(ctx, sess); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store OTP",
		})
	}

	ac.logger.Printf("Regenerated OTP for phone %s (%s)", sess.Phone, sess.Purpose)
	if err := ac.sendOTP(sess.Phone, sess.Code()); err != nil {
		ac.logger.Printf("OTP delivery failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send OTP",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "OTP resent successfully",
		Data:    map[string]interface{}{"resendAfter": registration.ResendWindow},
	})
}

// Login authenticates a voter by phone number and password.
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	loginReq.Phone = utils.SanitizeInput(loginReq.Phone)
	if loginReq.Phone == "" || loginReq.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number and password are required",
		})
	}

	if res := utils.ValidatePhone(loginReq.Phone); !res.Valid {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone number must be 10 digits.",
		})
	}

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[loginReq.Phone]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later.",
		})
	}

	user, err := ac.users.FindByPhone(ctx, loginReq.Phone)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid phone number or password.",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find user",
		})
	}

	if err := utils.CheckPassword(loginReq.Password, user.Password); err != nil {
		ac.loginAttemptsMu.Lock()
		if !exists {
			ac.loginAttempts[loginReq.Phone] = struct {
				count       int
				lastAttempt time.Time
			}{count: 1, lastAttempt: time.Now()}
		} else {
			ac.loginAttempts[loginReq.Phone] = struct {
				count       int
				lastAttempt time.Time
			}{count: attempts.count + 1, lastAttempt: time.Now()}
		}
		ac.loginAttemptsMu.Unlock()

		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid phone number or password.",
		})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, loginReq.Phone)
	ac.loginAttemptsMu.Unlock()

	// Checked only after the credentials pass, so a wrong password never
	// reveals an account's verification state.
	if !user.PhoneVerified {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Please verify your phone number before logging in.",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Phone, user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	collection := config.GetCollection(ac.DB, "users")
	update := bson.M{"$set": bson.M{"isActive": true, "lastActivityAt": time.Now(), "updatedAt": time.Now()}}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		ac.logger.Printf("Failed to update user active status: %v", err)
	}

	user.Password = ""

	var rememberMeToken string
	if loginReq.RememberMe {
		redisClient := config.GetRedisClient()
		if redisClient != nil {
			rememberMeToken, err = utils.GenerateRememberMeToken()
			if err == nil {
				credentials := utils.RememberedCredentials{
					Phone:      user.Phone,
					Email:      user.Email,
					UserID:     user.ID.Hex(),
					ExpiresAt:  time.Now().AddDate(0, 1, 0),
					DeviceInfo: c.Request().UserAgent(),
				}
				err = utils.StoreRememberedCredentials(redisClient, rememberMeToken, credentials, 30*24*time.Hour)
				if err != nil {
					ac.logger.Printf("Failed to store remember me credentials: %v", err)
					rememberMeToken = ""
				}
			}
		}
	}

	responseData := map[string]interface{}{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	}
	if rememberMeToken != "" {
		responseData["rememberMeToken"] = rememberMeToken
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    responseData,
	})
}

// Logout invalidates the session token and discards the per-session vote
// flag, the server-side stand-in for the client's local session marker.
func (ac *AuthController) Logout(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		middleware.BlacklistToken(authHeader[7:], time.Now().Add(24*time.Hour))
	}

	if err := ac.voteSessions.Clear(userID); err != nil {
		ac.logger.Printf("Failed to clear vote session: %v", err)
	}

	// A pending OTP session dies with the login session.
	if phone := middleware.GetPhoneFromToken(c); phone != "" {
		ac.otpSessionsMu.Lock()
		delete(ac.otpSessions, phone)
		ac.otpSessionsMu.Unlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if objID, err := utils.GetUserIDFromToken(c); err == nil {
		collection := config.GetCollection(ac.DB, "users")
		update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
			ac.logger.Printf("Failed to update user active status: %v", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logout successful",
	})
}

// CheckPhoneExists lets the signup form flag an already-registered phone or
// email before the final submit.
func (ac *AuthController) CheckPhoneExists(c echo.Context) error {
	var req struct {
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Phone == "" && req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Phone or email is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(ac.DB, "users")
	result := map[string]bool{}

	if req.Phone != "" {
		count, err := collection.CountDocuments(ctx, bson.M{"phone": utils.SanitizeInput(req.Phone)})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to check phone",
			})
		}
		result["phoneExists"] = count > 0
	}

	if req.Email != "" {
		count, err := collection.CountDocuments(ctx, bson.M{"email": utils.SanitizeInput(req.Email)})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to check email",
			})
		}
		result["emailExists"] = count > 0
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lookup complete",
		Data:    result,
	})
}

// ValidateToken lets the client check session validity on launch.
func (ac *AuthController) ValidateToken(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	resp, err := utils.ValidateTokenFromHeader(authHeader, ac.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to validate token",
		})
	}

	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, models.Response{
		Status:  status,
		Message: resp.Message,
		Data:    resp,
	})
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (ac *AuthController) RefreshToken(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Refresh token is required",
		})
	}

	resp, err := utils.ValidateToken(req.RefreshToken, ac.DB)
	if err != nil || !resp.Valid || resp.User == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid refresh token",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(resp.User.ID.Hex(), resp.User.Phone, resp.User.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token refreshed",
		Data: map[string]interface{}{
			"token":        token,
			"refreshToken": refreshToken,
		},
	})
}

// GetRememberedCredentials returns saved login hints for a remember-me token.
func (ac *AuthController) GetRememberedCredentials(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Token is required",
		})
	}

	credentials, err := utils.RetrieveRememberedCredentials(config.GetRedisClient(), req.Token)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Remembered credentials not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Credentials retrieved",
		Data:    credentials,
	})
}

// RemoveRememberedCredentials drops saved login hints.
func (ac *AuthController) RemoveRememberedCredentials(c echo.Context) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Token is required",
		})
	}

	if err := utils.RemoveRememberedCredentials(config.GetRedisClient(), req.Token); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove credentials",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Credentials removed",
	})
}
