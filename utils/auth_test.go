package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/matdaan/matdaan_backend/middleware"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret@123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret@123", hash)

	assert.NoError(t, CheckPassword("Secret@123", hash))
	assert.Error(t, CheckPassword("Wrong@123", hash))
}

func newContextWithToken(claims jwt.Claims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &jwt.Token{Claims: claims})
	return c
}

func TestGetUserIDFromToken(t *testing.T) {
	id := primitive.NewObjectID()
	c := newContextWithToken(&middleware.JwtCustomClaims{UserID: id.Hex()})

	got, err := GetUserIDFromToken(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGetUserIDFromTokenMapClaims(t *testing.T) {
	id := primitive.NewObjectID()
	c := newContextWithToken(jwt.MapClaims{"userId": id.Hex()})

	got, err := GetUserIDFromToken(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestGetUserIDFromTokenWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := GetUserIDFromToken(c)
	assert.Error(t, err)
}
