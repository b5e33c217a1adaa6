package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEpic(t *testing.T) {
	assert.True(t, ValidateEpic("ABC1234567").Valid)
	assert.True(t, ValidateEpic("XYZ1234567").Valid)

	for _, bad := range []string{"AB12345678", "abc1234567", "ABC123456", "ABC12345678", "1BC1234567", "ABC123456A"} {
		res := ValidateEpic(bad)
		assert.False(t, res.Valid, "expected %q to be invalid", bad)
		assert.Equal(t, "EPIC number must be 3 uppercase letters followed by 7 numbers.", res.Message)
	}

	// Untouched field: neither valid nor an error
	res := ValidateEpic("")
	assert.False(t, res.Valid)
	assert.Empty(t, res.Message)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("9999999999").Valid)
	assert.True(t, ValidatePhone("0123456789").Valid)

	for _, bad := range []string{"999999999", "99999999999", "99999999a9", "9999 99999", "+919999999999"} {
		res := ValidatePhone(bad)
		assert.False(t, res.Valid, "expected %q to be invalid", bad)
		assert.Equal(t, "Phone number must be 10 digits.", res.Message)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@gmail.com").Valid)
	assert.True(t, ValidateEmail("first.last+tag@gmail.com").Valid)

	for _, bad := range []string{"user@yahoo.com", "user@gmail.co", "usergmail.com", "@gmail.com"} {
		assert.False(t, ValidateEmail(bad).Valid, "expected %q to be invalid", bad)
	}
}

func TestValidateAadhar(t *testing.T) {
	assert.True(t, ValidateAadhar("123456789012").Valid)
	assert.False(t, ValidateAadhar("12345678901").Valid)
	assert.False(t, ValidateAadhar("1234567890123").Valid)
	assert.False(t, ValidateAadhar("12345678901a").Valid)
}

func TestValidatePincode(t *testing.T) {
	assert.True(t, ValidatePincode("400001").Valid)
	assert.False(t, ValidatePincode("40001").Valid)
	assert.False(t, ValidatePincode("4000011").Valid)
	assert.False(t, ValidatePincode("40000a").Valid)
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Abcdef1!").Valid)
	assert.True(t, ValidatePassword("Str0ng#Password").Valid)

	// Removing any one required class makes it invalid
	cases := map[string]string{
		"no uppercase": "abcdef1!",
		"no lowercase": "ABCDEF1!",
		"no digit":     "Abcdefg!",
		"no special":   "Abcdefg1",
		"too short":    "Abc1!de",
	}
	for name, password := range cases {
		res := ValidatePassword(password)
		assert.False(t, res.Valid, "case %s: expected %q to be invalid", name, password)
		assert.Equal(t, "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character.", res.Message)
	}
}

func TestValidateConfirmPassword(t *testing.T) {
	assert.True(t, ValidateConfirmPassword("Abcdef1!", "Abcdef1!").Valid)

	res := ValidateConfirmPassword("Abcdef1!", "Abcdef1")
	assert.False(t, res.Valid)
	assert.Equal(t, "Passwords do not match.", res.Message)

	// Empty confirmation is untouched, not mismatched
	res = ValidateConfirmPassword("Abcdef1!", "")
	assert.False(t, res.Valid)
	assert.Empty(t, res.Message)
}

func TestValidateAge(t *testing.T) {
	assert.True(t, ValidateAge("18").Valid)
	assert.True(t, ValidateAge("65").Valid)

	res := ValidateAge("17")
	assert.False(t, res.Valid)
	assert.Equal(t, "Age must be 18 or older.", res.Message)

	assert.False(t, ValidateAge("abc").Valid)
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2024, time.November, 20, 12, 0, 0, 0, time.UTC)

	// Exactly 18 years before today
	dob := time.Date(2006, time.November, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 18, AgeFromDOB(dob, now))

	// One day later: 18th birthday is tomorrow
	dob = time.Date(2006, time.November, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 17, AgeFromDOB(dob, now))

	// Birthday earlier in the year
	dob = time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, AgeFromDOB(dob, now))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
}

func TestHashAndCheckPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hash)

	assert.NoError(t, CheckPassword("Abcdef1!", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}
