// models/auth.go

package models

// SignupRequest carries the full output of the three-step registration form.
type SignupRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	EpicNumber   string `json:"epicNumber" validate:"required"`
	DateOfBirth  string `json:"dateOfBirth" validate:"required"`
	FatherName   string `json:"fatherName" validate:"required"`
	Gender       string `json:"gender" validate:"required,oneof=Male Female Other"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required"`
	AadharNumber string `json:"aadharNumber" validate:"required"`
	State        string `json:"state" validate:"required"`
	District     string `json:"district" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Password     string `json:"password" validate:"required"`
	// ConfirmPassword is checked against Password by the form wizard; it is
	// never stored.
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type ResendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type ForgetPasswordRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type ResetPasswordRequest struct {
	Phone           string `json:"phone" validate:"required"`
	ResetToken      string `json:"resetToken" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ValidateStepRequest asks the server to run one wizard step's validation
// over the raw field values the client currently holds.
type ValidateStepRequest struct {
	Step   int               `json:"step" validate:"required,min=1,max=3"`
	Fields map[string]string `json:"fields"`
}

// ValidateStepResponse reports per-field errors plus the step gate.
type ValidateStepResponse struct {
	StepValid bool              `json:"stepValid"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type VoteRequest struct {
	CandidateID string `json:"candidateId" validate:"required"`
}
