package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func healthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": http.StatusOK, "message": "Healthy"})
	}
}

func indexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":    "Customer REST API Service",
			"version": "1.0",
			"paths":   absoluteURL(c, routeListCustomers),
		})
	}
}

func absoluteURL(c echo.Context, route string, params ...any) string {
	return c.Scheme() + "://" + c.Request().Host + c.Echo().Reverse(route, params...)
}
