package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /api/customers?page=1&pageSize=10&searchInput=&sorting=asc
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	var filter dto.ListFilter
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "parámetros de paginación inválidos")
	}
	if err := c.QueryParser(&filter); err != nil {
		return badRequest(c, "parámetros de filtro inválidos")
	}
	list, err := h.uc.List(c.Context(), userID, page, filter)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	customer, err := h.uc.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(customer)
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" || in.Email == "" {
		return badRequest(c, "name y email son requeridos")
	}
	customer, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.EditCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	customer, err := h.uc.Edit(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(customer)
}

// Archive POST /api/customers/:id/archive
func (h *CustomerHandler) Archive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Archive(c.Context(), userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
