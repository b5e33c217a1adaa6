package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP purposes
const (
	OTPPurposeRegistration  = "registration"
	OTPPurposePasswordReset = "password_reset"
)

// PhoneOTP represents the OTP verification data stored per phone number.
// UserID points at the row the code was issued for: the freshly inserted
// (unverified) user during registration, or the account being reset.
type PhoneOTP struct {
	Phone     string             `bson:"phone"`
	OTP       string             `bson:"otp"`
	Purpose   string             `bson:"purpose"`
	UserID    primitive.ObjectID `bson:"userId"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	Verified  bool               `bson:"verified"`
}
