package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/httpx"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var request domain.CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}
	if request.UserID <= 0 {
		return httpx.BadRequestResponse(c, "User ID is required", nil)
	}

	order, err := h.orderService.CreateOrder(c.Context(), request)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.CreatedResponse(c, "Order created successfully", mapOrder(order))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid order ID", map[string]interface{}{
			"order_id": c.Params("id"),
		})
	}

	order, err := h.orderService.FindOrder(c.Context(), orderID)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Order retrieved successfully", mapOrder(order))
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.FindAllOrders(c.Context())
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Orders retrieved successfully", mapOrders(orders))
}

func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid order ID", nil)
	}

	var request UpdateStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	order, err := h.orderService.UpdateOrderStatus(c.Context(), orderID, request.Status)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Order status updated successfully", mapOrder(order))
}

func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid order ID", nil)
	}

	receipt, err := h.orderService.CancelOrder(c.Context(), orderID)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Order cancelled successfully", mapReceipt(receipt))
}

func (h *OrderHandler) ModifyOrder(c *fiber.Ctx) error {
	orderID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid order ID", nil)
	}

	var request domain.ModifyOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	order, err := h.orderService.ModifyOrder(c.Context(), orderID, request)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Order modified successfully", mapOrder(order))
}

func (h *OrderHandler) HealthCheck(c *fiber.Ctx) error {
	return httpx.SuccessResponse(c, "Service is healthy", map[string]interface{}{
		"service": "minishop",
		"status":  "healthy",
	})
}
