package middleware

// identity.go holds the user identity lookup shared by the rate limiter and
// the response cache.  JWTAuth stores the token subject under "user_id";
// unauthenticated requests fall back to "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// identityKey returns a stable string identifying the requester.
func identityKey(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	}
	return "anon"
}
