package registration

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matdaan/matdaan_backend/models"
)

func newSession() *OTPSession {
	return NewOTPSession(models.OTPPurposeRegistration, "9999999999", primitive.NewObjectID())
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		require.Len(t, code, CodeLength)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}

func TestCountdownReachesResendReadyAfterThirtyTicks(t *testing.T) {
	s := newSession()
	require.Equal(t, Counting, s.State())
	require.Equal(t, ResendWindow, s.Remaining())

	for i := 0; i < ResendWindow-1; i++ {
		s.Tick()
		require.Equal(t, Counting, s.State(), "still counting at %d ticks", i+1)
	}
	s.Tick()
	assert.Equal(t, ResendReady, s.State())
	assert.Equal(t, 0, s.Remaining())

	// Ticking past zero is a no-op
	s.Tick()
	assert.Equal(t, 0, s.Remaining())
}

func TestVerifyMatchesOnlyTheCurrentCode(t *testing.T) {
	s := newSession()

	s.SetEntered(s.Code())
	assert.True(t, s.Verify())

	// A new code from resend invalidates the old entry
	for i := 0; i < ResendWindow; i++ {
		s.Tick()
	}
	oldCode := s.Code()
	require.NoError(t, s.Resend())

	s.SetEntered(oldCode)
	if s.Code() != oldCode {
		assert.False(t, s.Verify())
	}
}

func TestVerifyMismatchKeepsBuffer(t *testing.T) {
	s := newSession()

	s.SetEntered("000000")
	if s.Code() == "000000" {
		t.Skip("generated code collided with the test entry")
	}
	assert.False(t, s.Verify())
	assert.Equal(t, "000000", s.Entered())

	// Correcting the entry succeeds without regenerating
	s.SetEntered(s.Code())
	assert.True(t, s.Verify())
}

func TestVerifyRejectsOverlongEntry(t *testing.T) {
	s := newSession()

	// Correct code with trailing characters must not verify
	s.SetEntered(s.Code() + "9")
	assert.False(t, s.Verify())
	assert.Empty(t, s.Entered())

	// The exact code still verifies afterwards
	s.SetEntered(s.Code())
	assert.True(t, s.Verify())
}

func TestConcurrentTickAndVerify(t *testing.T) {
	s := newSession()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				s.Tick()
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		s.SetEntered(s.Code())
		require.True(t, s.Verify())
		s.Remaining()
		s.State()
	}
	close(done)
	wg.Wait()
}

func TestSetCell(t *testing.T) {
	s := newSession()

	for i, ch := range []string{"1", "2", "3", "4", "5", "6"} {
		require.NoError(t, s.SetCell(i, ch))
	}
	assert.Equal(t, "123456", s.Entered())

	assert.ErrorIs(t, s.SetCell(-1, "0"), ErrBadCell)
	assert.ErrorIs(t, s.SetCell(CodeLength, "0"), ErrBadCell)
}

func TestResendOnlyWhenReady(t *testing.T) {
	s := newSession()

	assert.ErrorIs(t, s.Resend(), ErrResendNotReady)

	for i := 0; i < ResendWindow; i++ {
		s.Tick()
	}
	s.SetEntered("123456")
	require.NoError(t, s.Resend())

	// Resend clears the buffer and restarts the countdown
	assert.Empty(t, s.Entered())
	assert.Equal(t, ResendWindow, s.Remaining())
	assert.Equal(t, Counting, s.State())
}
