package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
)

// envelope is the uniform response shape: {success, data|error, message}.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

// ErrorHandler is the single translation boundary from apperr to the wire.
func ErrorHandler(l *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg, _ := he.Message.(string)
			if msg == "" {
				msg = http.StatusText(he.Code)
			}
			code := apperr.CodeServer
			switch he.Code {
			case http.StatusNotFound:
				code = apperr.CodeNotFound
			case http.StatusUnauthorized:
				code = apperr.CodeUnauthorized
			case http.StatusForbidden:
				code = apperr.CodeForbidden
			case http.StatusBadRequest:
				code = apperr.CodeValidation
			}
			_ = c.JSON(he.Code, envelope{Success: false, Error: code, Message: msg})
			return
		}

		ae := apperr.From(err)
		if ae.Status >= http.StatusInternalServerError {
			l.Error("request_error", "path", c.Path(), "error", err)
		}
		_ = c.JSON(ae.Status, envelope{Success: false, Error: ae.Code, Message: ae.Message})
	}
}
