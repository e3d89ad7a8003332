package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pancakehouse/backend/internal/jwtauth"
	"github.com/pancakehouse/backend/internal/logging"
	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/mykafka"
	"github.com/pancakehouse/backend/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, ok := jwtauth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req service.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.UserID = userID

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		l.Warn("create_order_error", "user_id", userID, "error", err)
		return toHTTPError(err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]interface{}{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	userID, ok := jwtauth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	if order.UserID != userID && !jwtauth.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, ok := jwtauth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.Svc.ListAllOrders(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		l.Warn("update_status_error", "order_id", id, "error", err)
		return toHTTPError(err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]interface{}{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   order.Status,
	})

	return c.JSON(http.StatusOK, order)
}
