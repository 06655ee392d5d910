package middleware

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
)

// RequireContentType rejects requests whose Content-Type header is not exactly mediaType.
// Parameters such as "; charset=utf-8" are not accepted.
func RequireContentType(mediaType string) echo.MiddlewareFunc {
	msg := "Content-Type must be " + mediaType
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderContentType) != mediaType {
				return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"message": msg})
			}
			return next(c)
		}
	}
}
