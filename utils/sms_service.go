package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// SMSService "delivers" verification codes. This demo has no SMS gateway: the
// code is written to the server log, mirroring the client app it replaces,
// which only ever printed the OTP to its console. The struct keeps the shape
// of a real provider client so a gateway can be dropped in later.
type SMSService struct {
	SenderID string
	logger   *log.Logger
}

// NewSMSService creates a new SMS service instance
func NewSMSService() *SMSService {
	senderID := os.Getenv("SMS_SENDER_ID")
	if senderID == "" {
		senderID = "Matdaan"
	}
	return &SMSService{
		SenderID: senderID,
		logger:   log.New(os.Stdout, "[SMS] ", log.LstdFlags),
	}
}

// SendOTP logs the code for the given phone number.
func (s *SMSService) SendOTP(phoneNumber, otp string) error {
	s.logger.Printf("OTP for %s: %s (sender %s)", phoneNumber, otp, s.SenderID)
	return nil
}

// SendOTPViaSMS sends a 6-digit OTP for a 10-digit local phone number.
func SendOTPViaSMS(phone string, otp string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("phone number is required")
	}
	return NewSMSService().SendOTP(phone, otp)
}
