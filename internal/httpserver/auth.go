package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/events"
	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/middleware"
	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/service"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func profilePayload(u *models.User, token string) echo.Map {
	payload := echo.Map{
		"userId":        u.UserID,
		"firstName":     u.FirstName,
		"lastName":      u.LastName,
		"email":         u.Email,
		"contactNumber": u.ContactNumber,
		"address":       u.Address,
	}
	if token != "" {
		payload["token"] = token
	}
	return payload
}

func (h *AuthHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		ContactNumber string `json:"contactNumber"`
		Address       string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Register(ctx, service.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":   "user_registered",
		"userId": user.UserID,
		"email":  user.Email,
	})

	return respondData(c, http.StatusCreated, profilePayload(user, token))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":   "user_logged_in",
		"userId": user.UserID,
	})

	return respondData(c, http.StatusOK, profilePayload(user, token))
}

func (h *AuthHTTP) GetProfile(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	return respondData(c, http.StatusOK, profilePayload(user, ""))
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		ContactNumber string `json:"contactNumber"`
		Address       string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	updated, token, err := h.Svc.UpdateProfile(ctx, user, service.UpdateProfileInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return respondServiceError(c, l, err)
	}

	return respondData(c, http.StatusOK, profilePayload(updated, token))
}
