package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/utils"
)

// fakeStore records the single insert Submit is allowed to perform.
type fakeStore struct {
	inserted []models.User
	err      error
}

func (f *fakeStore) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	f.inserted = append(f.inserted, user)
	return primitive.NewObjectID(), nil
}

func testNow() time.Time {
	return time.Date(2024, time.November, 20, 12, 0, 0, 0, time.UTC)
}

func validFields() Fields {
	return Fields{
		FullName:        "Ramesh Singh",
		EpicNumber:      "XYZ1234567",
		FatherName:      "Suresh Singh",
		Gender:          "Male",
		Phone:           "9999999999",
		Email:           "user@gmail.com",
		AadharNumber:    "123456789012",
		State:           "Maharashtra",
		District:        "Mumbai City",
		Pincode:         "400001",
		Address:         "12 Marine Drive",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	}
}

func newValidForm(t *testing.T) *Form {
	t.Helper()
	w := NewFormAt(testNow)
	w.SetFields(validFields())
	w.SelectDOB(time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC))
	return w
}

func TestNextAdvancesThroughAllSteps(t *testing.T) {
	w := newValidForm(t)

	require.Equal(t, StepPersonal, w.Step())
	require.NoError(t, w.Next())
	require.Equal(t, StepLocation, w.Step())
	require.NoError(t, w.Next())
	require.Equal(t, StepCredentials, w.Step())

	// Next past the last step is rejected
	assert.ErrorIs(t, w.Next(), ErrNotLastStep)
}

func TestNextRejectedWhenAnyStepOneFieldBad(t *testing.T) {
	breakField := []func(*Fields){
		func(f *Fields) { f.FullName = "" },
		func(f *Fields) { f.EpicNumber = "abc1234567" },
		func(f *Fields) { f.Phone = "12345" },
		func(f *Fields) { f.Email = "user@yahoo.com" },
		func(f *Fields) { f.AadharNumber = "123" },
		func(f *Fields) { f.FatherName = "" },
		func(f *Fields) { f.Gender = "" },
	}

	for _, mutate := range breakField {
		w := NewFormAt(testNow)
		f := validFields()
		mutate(&f)
		w.SetFields(f)
		w.SelectDOB(time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC))

		assert.ErrorIs(t, w.Next(), ErrStepInvalid)
		assert.Equal(t, StepPersonal, w.Step())
	}
}

func TestNextRejectedForMinor(t *testing.T) {
	w := NewFormAt(testNow)
	w.SetFields(validFields())

	// Exactly 18 years before today: eligible
	w.SelectDOB(time.Date(2006, time.November, 20, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, w.Next())

	// One day short of 18: rejected
	w = NewFormAt(testNow)
	w.SetFields(validFields())
	w.SelectDOB(time.Date(2006, time.November, 21, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, w.Next(), ErrStepInvalid)
	assert.Equal(t, "Age must be 18 or older.", w.FieldErrors()["age"])
}

func TestPreviousAlwaysWorks(t *testing.T) {
	w := newValidForm(t)
	require.NoError(t, w.Next())
	w.Previous()
	assert.Equal(t, StepPersonal, w.Step())

	// No-op on the first step
	w.Previous()
	assert.Equal(t, StepPersonal, w.Step())
}

func TestCredentialsStepValidation(t *testing.T) {
	f := validFields()
	f.Password = "Abcdef1!"
	f.ConfirmPassword = "Abcdef1!"
	assert.True(t, StepValid(StepCredentials, f))

	f.ConfirmPassword = "Abcdef1"
	assert.False(t, StepValid(StepCredentials, f))
	assert.Equal(t, "Passwords do not match.", FieldErrors(f)["confirmPassword"])
}

func TestSelectStateResetsDistrict(t *testing.T) {
	w := NewFormAt(testNow)

	districts, err := w.SelectState("Maharashtra")
	require.NoError(t, err)
	assert.Contains(t, districts, "Pune")

	require.NoError(t, w.SelectDistrict("Pune"))
	assert.Equal(t, "Pune", w.Fields().District)

	_, err = w.SelectState("Gujarat")
	require.NoError(t, err)
	assert.Empty(t, w.Fields().District)

	_, err = w.SelectState("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestSelectDistrictRequiresState(t *testing.T) {
	w := NewFormAt(testNow)
	assert.ErrorIs(t, w.SelectDistrict("Pune"), ErrStateRequired)

	_, err := w.SelectState("Maharashtra")
	require.NoError(t, err)
	assert.ErrorIs(t, w.SelectDistrict("Ahmedabad"), ErrUnknownOption)
}

func TestSetFieldsClearsForeignDistrict(t *testing.T) {
	w := NewFormAt(testNow)
	f := validFields()
	f.State = "Gujarat"
	f.District = "Mumbai City"
	w.SetFields(f)

	assert.Empty(t, w.Fields().District)
}

func TestSelectGender(t *testing.T) {
	w := NewFormAt(testNow)
	require.NoError(t, w.SelectGender("Female"))
	assert.Equal(t, "Female", w.Fields().Gender)
	assert.ErrorIs(t, w.SelectGender("Unknown"), ErrUnknownOption)
}

func TestSubmitInsertsOnceAndStartsOTP(t *testing.T) {
	w := newValidForm(t)
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	store := &fakeStore{}
	sess, err := w.Submit(context.Background(), store)
	require.NoError(t, err)
	require.NotNil(t, sess)

	require.Len(t, store.inserted, 1)
	user := store.inserted[0]
	assert.Equal(t, "XYZ1234567", user.EpicNumber)
	assert.Equal(t, "9999999999", user.Phone)
	assert.Equal(t, 34, user.Age)
	assert.Equal(t, "1990-05-15", user.DateOfBirth)
	assert.False(t, user.PhoneVerified)

	// Password is stored hashed
	assert.NotEqual(t, "Abcdef1!", user.Password)
	assert.NoError(t, utils.CheckPassword("Abcdef1!", user.Password))

	assert.Equal(t, models.OTPPurposeRegistration, sess.Purpose)
	assert.Equal(t, "9999999999", sess.Phone)
	assert.Len(t, sess.Code(), CodeLength)
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	w := newValidForm(t)
	_, err := w.Submit(context.Background(), &fakeStore{})
	assert.ErrorIs(t, err, ErrNotLastStep)
}

func TestSubmitFailureKeepsCredentialsStep(t *testing.T) {
	w := newValidForm(t)
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	store := &fakeStore{err: errors.New("connection refused")}
	_, err := w.Submit(context.Background(), store)
	require.Error(t, err)

	// No retry happened and the wizard stayed put
	assert.Empty(t, store.inserted)
	assert.Equal(t, StepCredentials, w.Step())

	// A corrected store succeeds on resubmit
	ok := &fakeStore{}
	_, err = w.Submit(context.Background(), ok)
	assert.NoError(t, err)
	assert.Len(t, ok.inserted, 1)
}
