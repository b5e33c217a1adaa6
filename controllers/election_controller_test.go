package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/utils"
	"github.com/matdaan/matdaan_backend/websocket"
)

func newElectionTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetStates(t *testing.T) {
	ec := NewElectionController(utils.NewVoteSessions(nil), websocket.NewHub())
	c, rec := newElectionTestContext(t, http.MethodGet, "/api/states", "")

	require.NoError(t, ec.GetStates(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, http.StatusOK, resp.Status)

	states, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, states, len(models.States))
}

func TestGetDistricts(t *testing.T) {
	ec := NewElectionController(utils.NewVoteSessions(nil), websocket.NewHub())

	c, rec := newElectionTestContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/states/:state/districts")
	c.SetParamNames("state")
	c.SetParamValues("Maharashtra")

	require.NoError(t, ec.GetDistricts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newElectionTestContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/states/:state/districts")
	c.SetParamNames("state")
	c.SetParamValues("Atlantis")

	require.NoError(t, ec.GetDistricts(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCandidatesAndResults(t *testing.T) {
	ec := NewElectionController(utils.NewVoteSessions(nil), websocket.NewHub())

	c, rec := newElectionTestContext(t, http.MethodGet, "/api/elections/candidates", "")
	require.NoError(t, ec.GetCandidates(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newElectionTestContext(t, http.MethodGet, "/api/elections/live", "")
	require.NoError(t, ec.GetLiveResults(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	snapshot, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1", snapshot["electionId"])
}

func TestResultsSnapshot(t *testing.T) {
	ec := NewElectionController(utils.NewVoteSessions(nil), websocket.NewHub())

	snap := ec.ResultsSnapshot()
	assert.Equal(t, UpcomingElectionID(), snap.ElectionID)
	assert.Len(t, snap.Results, len(models.LiveResults))
	assert.False(t, snap.AsOf.IsZero())
}

func TestValidateStep(t *testing.T) {
	ac := &AuthController{}

	body := `{"step":1,"fields":{"fullName":"Ramesh Singh","epicNumber":"XYZ1234567","age":"34","dateOfBirth":"1990-05-15","fatherName":"Suresh Singh","gender":"Male","phone":"9999999999","email":"user@gmail.com","aadharNumber":"123456789012"}}`
	c, rec := newElectionTestContext(t, http.MethodPost, "/api/auth/signup/validate-step", body)

	require.NoError(t, ac.ValidateStep(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["stepValid"])

	// One bad field closes the gate and names the field
	body = `{"step":1,"fields":{"fullName":"Ramesh Singh","epicNumber":"abc1234567","age":"34","dateOfBirth":"1990-05-15","fatherName":"Suresh Singh","gender":"Male","phone":"9999999999","email":"user@gmail.com","aadharNumber":"123456789012"}}`
	c, rec = newElectionTestContext(t, http.MethodPost, "/api/auth/signup/validate-step", body)

	require.NoError(t, ac.ValidateStep(c))
	resp = decodeResponse(t, rec)
	data, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["stepValid"])

	errs, ok := data["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "epicNumber")

	// Out-of-range step
	c, rec = newElectionTestContext(t, http.MethodPost, "/api/auth/signup/validate-step", `{"step":4,"fields":{}}`)
	require.NoError(t, ac.ValidateStep(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
