package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daspi/bookshop/internal/events"
	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/middleware"
	"github.com/daspi/bookshop/internal/service"
)

type VoucherHTTP struct {
	Svc      *service.VoucherService
	Producer *events.Producer
}

func (h *VoucherHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicVoucherEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *VoucherHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.create")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		VoucherPrice float64 `json:"voucherPrice"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_voucher_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	voucher, err := h.Svc.Create(ctx, user, req.VoucherPrice)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":   "voucher_created",
		"userId": user.UserID,
		"code":   voucher.VoucherCode,
		"price":  voucher.VoucherPrice,
	})

	return respondData(c, http.StatusCreated, voucher)
}

func (h *VoucherHTTP) ListActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.active")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	vouchers, err := h.Svc.Active(ctx, user)
	if err != nil {
		return respondServiceError(c, l, err)
	}
	return respondList(c, http.StatusOK, len(vouchers), vouchers)
}

func (h *VoucherHTTP) ListExpired(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.expired")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	vouchers, err := h.Svc.Expired(ctx, user)
	if err != nil {
		return respondServiceError(c, l, err)
	}
	return respondList(c, http.StatusOK, len(vouchers), vouchers)
}

func (h *VoucherHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.validate")

	var req struct {
		VoucherCode string `json:"voucherCode"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("validate_voucher_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	voucher, err := h.Svc.Validate(ctx, req.VoucherCode)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	return respondData(c, http.StatusOK, echo.Map{
		"voucherCode":  voucher.VoucherCode,
		"voucherPrice": voucher.VoucherPrice,
		"expiryDate":   voucher.ExpiryDate,
	})
}

func (h *VoucherHTTP) Apply(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.apply")

	var req struct {
		VoucherCode string `json:"voucherCode"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("apply_voucher_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	voucher, err := h.Svc.Apply(ctx, req.VoucherCode)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, voucher.UserID, map[string]interface{}{
		"type":   "voucher_applied",
		"userId": voucher.UserID,
		"code":   voucher.VoucherCode,
	})

	return respondMessageData(c, http.StatusOK, "Voucher applied successfully", echo.Map{
		"voucherCode":  voucher.VoucherCode,
		"voucherPrice": voucher.VoucherPrice,
	})
}
