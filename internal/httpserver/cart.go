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

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCartEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.Cart(ctx, user)
	if err != nil {
		return respondServiceError(c, l, err)
	}
	return respondData(c, http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		BookID   string  `json:"bookId"`
		BookName string  `json:"bookName"`
		Quantity uint    `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddItem(ctx, user, req.BookID, req.BookName, req.Quantity, req.Price)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":     "cart_item_added",
		"userId":   user.UserID,
		"bookId":   req.BookID,
		"quantity": req.Quantity,
	})

	return respondData(c, http.StatusOK, cart)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	bookID := c.Param("bookId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.UpdateItem(ctx, user, bookID, req.Quantity)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":     "cart_item_updated",
		"userId":   user.UserID,
		"bookId":   bookID,
		"quantity": req.Quantity,
	})

	return respondData(c, http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	bookID := c.Param("bookId")

	cart, err := h.Svc.RemoveItem(ctx, user, bookID)
	if err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":   "cart_item_removed",
		"userId": user.UserID,
		"bookId": bookID,
	})

	return respondData(c, http.StatusOK, cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.Clear(ctx, user); err != nil {
		return respondServiceError(c, l, err)
	}

	h.publish(c, user.UserID, map[string]interface{}{
		"type":   "cart_cleared",
		"userId": user.UserID,
	})

	return respondMessage(c, http.StatusOK, "Cart cleared successfully")
}
