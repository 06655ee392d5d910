package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
)

const HeaderAPIKey = "X-API-Key"

// APIKey requires the X-API-Key header to equal key. An empty key disables the check.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if key == "" {
			return next
		}
		return func(c echo.Context) error {
			got := strings.TrimSpace(c.Request().Header.Get(HeaderAPIKey))
			if got == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing api key"})
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid api key"})
			}
			return next(c)
		}
	}
}
