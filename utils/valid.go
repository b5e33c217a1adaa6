// utils/valid.go
package utils

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// FieldResult is the outcome of validating one raw form field. Empty input is
// never an error: fields are not validated until the user has typed something,
// but an empty required field still does not count as valid.
type FieldResult struct {
	Valid   bool
	Message string
}

var (
	epicRegex    = regexp.MustCompile(`^[A-Z]{3}[0-9]{7}$`)
	phoneRegex   = regexp.MustCompile(`^[0-9]{10}$`)
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	aadharRegex  = regexp.MustCompile(`^[0-9]{12}$`)
	pincodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

const passwordSpecials = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// ValidateEpic checks for 3 uppercase letters followed by 7 digits.
func ValidateEpic(epic string) FieldResult {
	return match(epic, epicRegex, "EPIC number must be 3 uppercase letters followed by 7 numbers.")
}

// ValidatePhone checks for exactly 10 digits.
func ValidatePhone(phone string) FieldResult {
	return match(phone, phoneRegex, "Phone number must be 10 digits.")
}

// ValidateEmail restricts addresses to the gmail.com domain. The rule is kept
// from the client form it replaces.
func ValidateEmail(email string) FieldResult {
	return match(email, emailRegex, "Email must be a valid @gmail.com address.")
}

// ValidateAadhar checks for exactly 12 digits.
func ValidateAadhar(aadhar string) FieldResult {
	return match(aadhar, aadharRegex, "Aadhar number must be 12 digits.")
}

// ValidatePincode checks for exactly 6 digits.
func ValidatePincode(pincode string) FieldResult {
	return match(pincode, pincodeRegex, "Pincode must be 6 digits.")
}

// ValidatePassword requires at least 8 characters with at least one lowercase
// letter, one uppercase letter, one digit and one special character.
func ValidatePassword(password string) FieldResult {
	if password == "" {
		return FieldResult{}
	}
	if isStrongPassword(password) {
		return FieldResult{Valid: true}
	}
	return FieldResult{Message: "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character."}
}

// ValidateConfirmPassword requires a non-empty confirmation equal to the
// password.
func ValidateConfirmPassword(password, confirm string) FieldResult {
	if confirm == "" {
		return FieldResult{}
	}
	if confirm == password {
		return FieldResult{Valid: true}
	}
	return FieldResult{Message: "Passwords do not match."}
}

// ValidateAge parses the derived age field and requires 18 or older.
func ValidateAge(age string) FieldResult {
	if age == "" {
		return FieldResult{}
	}
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil || n < 18 {
		return FieldResult{Message: "Age must be 18 or older."}
	}
	return FieldResult{Valid: true}
}

// AgeFromDOB derives whole years between the birth date and now, decremented
// by one when now's month/day precedes the birth month/day.
func AgeFromDOB(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	m := int(now.Month()) - int(dob.Month())
	if m < 0 || (m == 0 && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}

func match(value string, re *regexp.Regexp, message string) FieldResult {
	if value == "" {
		return FieldResult{}
	}
	if re.MatchString(value) {
		return FieldResult{Valid: true}
	}
	return FieldResult{Message: message}
}

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	// Trim spaces
	input = strings.TrimSpace(input)

	// HTML escape
	input = html.EscapeString(input)

	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	return input
}
