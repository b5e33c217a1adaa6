// utils/otp.go
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ValidateOTPAttempts limits verification attempts per phone number.
func ValidateOTPAttempts(phone string, redis *redis.Client) error {
	key := "otp_attempts:" + phone
	attempts, err := redis.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		redis.Expire(context.Background(), key, 1*time.Hour)
	}

	// Limit to 5 attempts per hour
	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}

// MarkResendWindow opens the resend countdown for a phone number so that every
// instance of the service honors the same 30-second window.
func MarkResendWindow(phone string, window time.Duration, redis *redis.Client) error {
	if redis == nil {
		return nil
	}
	return redis.Set(context.Background(), "otp_resend:"+phone, "1", window).Err()
}

// ResendRemaining reports how long until resend becomes available; zero means
// resend is allowed.
func ResendRemaining(phone string, redis *redis.Client) (time.Duration, error) {
	if redis == nil {
		return 0, nil
	}
	ttl, err := redis.TTL(context.Background(), "otp_resend:"+phone).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
