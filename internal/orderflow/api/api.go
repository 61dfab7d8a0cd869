package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"microservices-demo/internal/orderflow/entity"
	"microservices-demo/internal/orderflow/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder creates a new order --> POST /orders
// Status codes distinguish why a creation was rejected: 422 when the
// referenced user does not exist, 503 when the user store could not be asked.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	req := entity.CreateOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	req.IdempotentKey = c.Request().Header.Get("Idempotent-Key")

	createdOrder, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			return c.JSON(400, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrDuplicateRequest):
			return c.JSON(409, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrUserNotFound):
			return c.JSON(422, map[string]string{"error": err.Error()})
		case errors.Is(err, entity.ErrUserLookupFailed):
			return c.JSON(503, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(201, createdOrder)
}

// ListOrders returns all orders --> GET /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, orders)
}

// GetOrderByID retrieves an order by ID --> GET /orders/:id
func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	id := c.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.GetOrderByID(c.Request().Context(), idInt)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			return c.JSON(404, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, order)
}

// ListOrdersByUser returns the orders for a user --> GET /orders/user/:userId
func (h *OrderHandler) ListOrdersByUser(c echo.Context) error {
	userID := c.Param("userId")
	userIDInt, err := strconv.Atoi(userID)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user ID"})
	}

	orders, err := h.orderService.ListOrdersByUser(c.Request().Context(), userIDInt)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, orders)
}
