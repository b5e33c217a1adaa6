package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeSecurityHeaders(t *testing.T, config SecurityConfig) http.Header {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SecurityHeadersWithConfig(config)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec.Header()
}

func TestSecurityHeadersDenyByDefault(t *testing.T) {
	h := invokeSecurityHeaders(t, SecurityConfig{})

	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
	assert.Equal(t, "no-store", h.Get("Cache-Control"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", h.Get("Content-Security-Policy"))
	assert.Empty(t, h.Get("Strict-Transport-Security"))
}

func TestSecurityHeadersHSTSOnlyWhenEnabled(t *testing.T) {
	h := invokeSecurityHeaders(t, SecurityConfig{EnableHSTS: true})
	assert.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
}

func TestSecurityHeadersConnectSources(t *testing.T) {
	h := invokeSecurityHeaders(t, SecurityConfig{ConnectSources: []string{"https://api.example.in"}})
	assert.Contains(t, h.Get("Content-Security-Policy"), "connect-src 'self' https://api.example.in")
}
