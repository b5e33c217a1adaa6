// registration/otp.go
package registration

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP session constants.
const (
	CodeLength   = 6
	ResendWindow = 30 // seconds until resend becomes available
)

// OTPState is the countdown state of a session.
type OTPState int

const (
	Counting    OTPState = iota // timer running, resend disabled
	ResendReady                 // timer at zero, resend enabled
)

var (
	ErrResendNotReady = errors.New("resend is not available until the countdown ends")
	ErrBadCell        = errors.New("cell index out of range")
)

// OTPSession holds one pending verification: the expected 6-digit code, the
// entered-character buffer, and the resend countdown. The session carries its
// own lock; the countdown ticker and request handlers touch it concurrently.
type OTPSession struct {
	Purpose string
	Phone   string
	UserID  primitive.ObjectID

	mu     sync.Mutex
	code   string
	buffer [CodeLength]string
	timer  int
}

// NewOTPSession generates a code and starts the countdown at 30 seconds.
func NewOTPSession(purpose, phone string, userID primitive.ObjectID) *OTPSession {
	return &OTPSession{
		Purpose: purpose,
		Phone:   phone,
		UserID:  userID,
		code:    GenerateCode(),
		timer:   ResendWindow,
	}
}

// Code returns the expected code. It is logged by the delivery stub, never
// sent through an out-of-band channel.
func (s *OTPSession) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// State derives the session state from the timer.
func (s *OTPSession) State() OTPState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer > 0 {
		return Counting
	}
	return ResendReady
}

// Remaining reports the seconds left until resend is enabled.
func (s *OTPSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer
}

// Tick advances the countdown by one second. Ticking past zero is a no-op.
func (s *OTPSession) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer > 0 {
		s.timer--
	}
}

// SetCell writes one entered character into the buffer.
func (s *OTPSession) SetCell(i int, ch string) error {
	if i < 0 || i >= CodeLength {
		return ErrBadCell
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer[i] = ch
	return nil
}

// SetEntered fills the buffer from a whole entered string, one character per
// cell. Input longer than the code clears the buffer instead: extra characters
// must fail verification, not be silently dropped.
func (s *OTPSession) SetEntered(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runes := []rune(code)
	if len(runes) > CodeLength {
		s.buffer = [CodeLength]string{}
		return
	}
	for i := 0; i < CodeLength; i++ {
		if i < len(runes) {
			s.buffer[i] = string(runes[i])
		} else {
			s.buffer[i] = ""
		}
	}
}

// Entered is the concatenation of the buffer cells.
func (s *OTPSession) Entered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered()
}

func (s *OTPSession) entered() string {
	var out string
	for _, ch := range s.buffer {
		out += ch
	}
	return out
}

// Verify compares the entered concatenation with the expected code. On a
// mismatch the buffer is left as typed so the user can correct it.
func (s *OTPSession) Verify() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered() == s.code
}

// Resend regenerates the code, clears the buffer, and restarts the countdown.
// Only valid once the countdown has ended.
func (s *OTPSession) Resend() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer > 0 {
		return ErrResendNotReady
	}
	s.code = GenerateCode()
	s.buffer = [CodeLength]string{}
	s.timer = ResendWindow
	return nil
}

// GenerateCode produces a random 6-digit code in [100000, 999999].
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
