package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/httpx"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var request ItemRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	item, err := h.itemService.Create(c.Context(), &domain.Item{
		Name:          request.Name,
		Price:         request.Price,
		StockQuantity: request.StockQuantity,
	})
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.CreatedResponse(c, "Item created successfully", item)
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid item ID", nil)
	}

	var request ItemRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	item, err := h.itemService.Update(c.Context(), &domain.Item{
		ID:            itemID,
		Name:          request.Name,
		Price:         request.Price,
		StockQuantity: request.StockQuantity,
	})
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Item updated successfully", item)
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid item ID", nil)
	}

	if err := h.itemService.Delete(c.Context(), itemID); err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Item deleted successfully", nil)
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	itemID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid item ID", nil)
	}

	item, err := h.itemService.Find(c.Context(), itemID)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Item retrieved successfully", item)
}

func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.itemService.FindAll(c.Context())
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Items retrieved successfully", items)
}
