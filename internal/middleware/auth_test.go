package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-booking-marketplace/internal/utils"
)

const testSecret = "test-secret"

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("", mw...)
	g.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	})
	return e
}

func TestJWTAuthMissingHeader(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))
	rec := doRequest(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))
	rec := doRequest(e, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "BOOKER", 5)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret))
	rec := doRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "BOOKER", 5)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret))
	rec := doRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"BOOKER"`)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "ARTIST", 5)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret), RequireRole("ARTIST"))
	rec := doRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "BOOKER", 5)
	require.NoError(t, err)

	e := protectedEcho(JWTAuth(testSecret), RequireRole("ARTIST"))
	rec := doRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	e := protectedEcho(RequireRole("BOOKER", "ARTIST"))
	rec := doRequest(e, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
