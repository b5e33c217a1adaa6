// registration/form.go
package registration

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/utils"
)

// Step identifies one page of the signup wizard.
type Step int

const (
	StepPersonal    Step = 1 // name, EPIC, phone, email, Aadhar, DOB, father's name, gender
	StepLocation    Step = 2 // state, district, pincode, address
	StepCredentials Step = 3 // password + confirmation
)

var (
	ErrStepInvalid   = errors.New("current step has missing or invalid fields")
	ErrNotLastStep   = errors.New("submit is only allowed from the credentials step")
	ErrStateRequired = errors.New("state must be chosen before district")
	ErrUnknownOption = errors.New("value is not one of the offered options")
)

// Genders offered by the signup form.
var Genders = []string{"Male", "Female", "Other"}

// Fields holds the raw text values of every form field. Age is derived from
// the date of birth and is not independently editable.
type Fields struct {
	FullName        string
	EpicNumber      string
	Age             string
	DateOfBirth     string
	FatherName      string
	Gender          string
	Phone           string
	Email           string
	AadharNumber    string
	State           string
	District        string
	Pincode         string
	Address         string
	Password        string
	ConfirmPassword string
}

// UserInserter is the single write the wizard performs on submit.
type UserInserter interface {
	InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error)
}

// Form is the three-step registration wizard. Next advances only when the
// current step's required fields are all present and valid; Previous always
// works; Submit runs from the last step and issues exactly one insert. A
// failed insert leaves the wizard on the credentials step so the user can
// resubmit.
type Form struct {
	step   Step
	fields Fields
	now    func() time.Time
}

// NewForm starts a wizard on the personal-information step.
func NewForm() *Form {
	return &Form{step: StepPersonal, now: time.Now}
}

// NewFormAt is NewForm with an injected clock, for age derivation in tests.
func NewFormAt(now func() time.Time) *Form {
	return &Form{step: StepPersonal, now: now}
}

func (w *Form) Step() Step     { return w.step }
func (w *Form) Fields() Fields { return w.fields }

// SetFields replaces the raw field values wholesale. District is cleared when
// it does not belong to the chosen state, mirroring the state-first rule.
func (w *Form) SetFields(f Fields) {
	if f.District != "" && !contains(models.DistrictsForState(f.State), f.District) {
		f.District = ""
	}
	w.fields = f
}

// SelectDOB records the birth date and re-derives the age field.
func (w *Form) SelectDOB(dob time.Time) {
	w.fields.DateOfBirth = dob.Format("2006-01-02")
	w.fields.Age = strconv.Itoa(utils.AgeFromDOB(dob, w.now()))
}

// SelectGender accepts only the offered options.
func (w *Form) SelectGender(gender string) error {
	if !contains(Genders, gender) {
		return ErrUnknownOption
	}
	w.fields.Gender = gender
	return nil
}

// SelectState sets the state, resets the district, and returns the district
// options for the chosen state.
func (w *Form) SelectState(state string) ([]string, error) {
	districts := models.DistrictsForState(state)
	if districts == nil {
		return nil, ErrUnknownOption
	}
	w.fields.State = state
	w.fields.District = ""
	return districts, nil
}

// SelectDistrict requires a chosen state and a district from its option list.
func (w *Form) SelectDistrict(district string) error {
	if w.fields.State == "" {
		return ErrStateRequired
	}
	if !contains(models.DistrictsForState(w.fields.State), district) {
		return ErrUnknownOption
	}
	w.fields.District = district
	return nil
}

// FieldErrors returns the fixed error message for every non-empty invalid
// field of the whole form. Untouched (empty) fields produce no entry.
func (w *Form) FieldErrors() map[string]string {
	return FieldErrors(w.fields)
}

// StepValid reports whether the current step's gate is open.
func (w *Form) StepValid() bool {
	return StepValid(w.step, w.fields)
}

// Next advances to the following step when the current one validates.
func (w *Form) Next() error {
	if w.step >= StepCredentials {
		return ErrNotLastStep
	}
	if !w.StepValid() {
		return ErrStepInvalid
	}
	w.step++
	return nil
}

// Previous always succeeds; on the first step it is a no-op.
func (w *Form) Previous() {
	if w.step > StepPersonal {
		w.step--
	}
}

// Submit builds the user record and issues the single insert. On success it
// hands control to a fresh OTP session carrying the new record's id; on
// failure the wizard stays on the credentials step and no retry is attempted.
func (w *Form) Submit(ctx context.Context, store UserInserter) (*OTPSession, error) {
	if w.step != StepCredentials {
		return nil, ErrNotLastStep
	}
	if !StepValid(StepPersonal, w.fields) || !StepValid(StepLocation, w.fields) || !w.StepValid() {
		return nil, ErrStepInvalid
	}

	hash, err := utils.HashPassword(w.fields.Password)
	if err != nil {
		return nil, err
	}

	age, _ := strconv.Atoi(w.fields.Age)
	now := w.now()
	user := models.User{
		FullName:     w.fields.FullName,
		EpicNumber:   w.fields.EpicNumber,
		Age:          age,
		DateOfBirth:  w.fields.DateOfBirth,
		FatherName:   w.fields.FatherName,
		Gender:       w.fields.Gender,
		Phone:        w.fields.Phone,
		Email:        w.fields.Email,
		AadharNumber: w.fields.AadharNumber,
		State:        w.fields.State,
		District:     w.fields.District,
		Pincode:      w.fields.Pincode,
		Address:      w.fields.Address,
		Password:     hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := store.InsertUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return NewOTPSession(models.OTPPurposeRegistration, w.fields.Phone, id), nil
}

// FieldErrors runs every field validator over the raw values and collects the
// fixed messages of the non-empty invalid ones.
func FieldErrors(f Fields) map[string]string {
	errs := make(map[string]string)
	collect := func(name string, r utils.FieldResult) {
		if r.Message != "" {
			errs[name] = r.Message
		}
	}
	collect("epicNumber", utils.ValidateEpic(f.EpicNumber))
	collect("phone", utils.ValidatePhone(f.Phone))
	collect("email", utils.ValidateEmail(f.Email))
	collect("aadharNumber", utils.ValidateAadhar(f.AadharNumber))
	collect("age", utils.ValidateAge(f.Age))
	collect("pincode", utils.ValidatePincode(f.Pincode))
	collect("password", utils.ValidatePassword(f.Password))
	collect("confirmPassword", utils.ValidateConfirmPassword(f.Password, f.ConfirmPassword))
	return errs
}

// StepValid evaluates one step's gate against the raw values: every required
// field non-empty and every validator on the step satisfied.
func StepValid(step Step, f Fields) bool {
	switch step {
	case StepPersonal:
		return f.FullName != "" && f.EpicNumber != "" && f.Phone != "" && f.Email != "" &&
			f.AadharNumber != "" && f.DateOfBirth != "" && f.FatherName != "" && f.Gender != "" &&
			utils.ValidateEpic(f.EpicNumber).Valid &&
			utils.ValidatePhone(f.Phone).Valid &&
			utils.ValidateEmail(f.Email).Valid &&
			utils.ValidateAadhar(f.AadharNumber).Valid &&
			utils.ValidateAge(f.Age).Valid
	case StepLocation:
		return f.State != "" && f.District != "" && f.Pincode != "" && f.Address != "" &&
			utils.ValidatePincode(f.Pincode).Valid
	case StepCredentials:
		return f.Password != "" && f.ConfirmPassword != "" &&
			utils.ValidatePassword(f.Password).Valid &&
			utils.ValidateConfirmPassword(f.Password, f.ConfirmPassword).Valid
	default:
		return false
	}
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
