package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/auth"
	"github.com/jhoicas/invoices-api/internal/application/dto"
)

// AuthHandler maneja las peticiones de registro y login (público).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return badRequest(c, "name, email y password son requeridos")
	}
	token, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(token)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	token, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(token)
}
