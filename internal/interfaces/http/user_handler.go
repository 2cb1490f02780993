package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
)

// UserHandler maneja las peticiones sobre la cuenta del usuario autenticado.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	user, err := h.uc.GetByID(c.Context(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

// Update PUT /api/users/me
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	user, err := h.uc.Edit(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return badRequest(c, "currentPassword y newPassword son requeridos")
	}
	user, err := h.uc.ChangePassword(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

// Archive POST /api/users/me/archive
func (h *UserHandler) Archive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Archive(c.Context(), userID); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/users/me
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
