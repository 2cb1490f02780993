package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	uc  *usecase.InvoiceUseCase
	pdf *usecase.InvoicePDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, pdf *usecase.InvoicePDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// List GET /api/invoices?page=1&pageSize=10&searchInput=&sorting=asc
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	inv, err := h.uc.Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(inv)
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CustomerID == "" {
		return badRequest(c, "customerId es requerido")
	}
	inv, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.EditInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	inv, err := h.uc.Edit(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(inv)
}

// ChangeStatus PUT /api/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ChangeInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	target, ok := entity.ParseInvoiceStatus(in.Status)
	if !ok {
		return badRequest(c, "status desconocido")
	}
	inv, err := h.uc.ChangeStatus(c.Context(), userID, c.Params("id"), target)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(inv)
}

// CreateRow POST /api/invoices/:id/createRow
func (h *InvoiceHandler) CreateRow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRowRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Service == "" {
		return badRequest(c, "service es requerido")
	}
	inv, err := h.uc.AddRow(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// CreateRowRange POST /api/invoices/:id/createRowRange
func (h *InvoiceHandler) CreateRowRange(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in []dto.CreateInvoiceRowRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if len(in) == 0 {
		return badRequest(c, "se requiere al menos una línea")
	}
	inv, err := h.uc.AddRowRange(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// DeleteRow DELETE /api/invoices/:id/deleteRow/:rowId
func (h *InvoiceHandler) DeleteRow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	inv, err := h.uc.DeleteRow(c.Context(), userID, c.Params("id"), c.Params("rowId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(inv)
}

// Download GET /api/invoices/:id/download
func (h *InvoiceHandler) Download(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	invoiceID := c.Params("id")
	pdfBytes, err := h.pdf.Download(c.Context(), userID, invoiceID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="factura-`+invoiceID+`.pdf"`)
	return c.Send(pdfBytes)
}

// Archive POST /api/invoices/:id/archive
func (h *InvoiceHandler) Archive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Archive(c.Context(), userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), userID, c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
