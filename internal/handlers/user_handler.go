package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/httpx"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var request domain.CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	user, err := h.userService.Create(c.Context(), request)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.CreatedResponse(c, "User created successfully", user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid user ID", nil)
	}

	var request domain.UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	user, err := h.userService.Update(c.Context(), userID, request)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid user ID", nil)
	}

	if err := h.userService.Delete(c.Context(), userID); err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "User deleted successfully", nil)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "id")
	if !ok {
		return httpx.BadRequestResponse(c, "Invalid user ID", nil)
	}

	user, err := h.userService.Find(c.Context(), userID)
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "User retrieved successfully", user)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.FindAll(c.Context())
	if err != nil {
		return httpx.ErrorResponse(c, err)
	}
	return httpx.SuccessResponse(c, "Users retrieved successfully", users)
}
