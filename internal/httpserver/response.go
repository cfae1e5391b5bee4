package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/service"
)

// Envelope is the uniform response shape: success true carries data
// (and sometimes a message or a list count), success false carries a
// message, with the error detail attached for 500s.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

func respondData(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func respondMessageData(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func respondMessage(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: true, Message: message})
}

func respondList(c echo.Context, code int, count int, data interface{}) error {
	return c.JSON(code, Envelope{Success: true, Count: &count, Data: data})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP
// statuses and logs anything unexpected as a server error.
func respondServiceError(c echo.Context, l *slog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExpired):
		l.Warn("request rejected", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn("request rejected", "status", 401)
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		l.Warn("request rejected", "status", 404, "error", err)
		return respondError(c, http.StatusNotFound, err.Error())
	default:
		l.Error("request failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Server Error",
			Error:   err.Error(),
		})
	}
}
