package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorBody struct {
	Message string `json:"message"`
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorBody{Message: msg})
}

func notFound(c echo.Context, id string) error {
	return errorJSON(c, http.StatusNotFound, fmt.Sprintf("Customer with id '%s' was not found.", id))
}

// storeFailure logs a gateway error with the operation and id, then answers 500.
func storeFailure(c echo.Context, log *zap.Logger, op string, id int64, err error) error {
	log.Error("customer operation failed",
		zap.String("op", op),
		zap.Int64("id", id),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return errorJSON(c, http.StatusInternalServerError, "database error")
}

// errorHandler renders every error that reaches echo, router errors included,
// as {"message": ...}.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = errorJSON(c, code, msg)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
