package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// ReportHandler maneja las peticiones de reportes agregados (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parsePeriod lee ?start=&end= en RFC 3339. Un límite ausente queda nil.
func parsePeriod(c *fiber.Ctx) (dto.TimePeriod, error) {
	var period dto.TimePeriod
	if err := c.QueryParser(&period); err != nil {
		return dto.TimePeriod{}, err
	}
	return period, nil
}

// Customer GET /api/reports/customer?start=&end=
func (h *ReportHandler) Customer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	period, err := parsePeriod(c)
	if err != nil {
		return badRequest(c, "período inválido")
	}
	report, err := h.uc.CustomerReport(c.Context(), userID, period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(report)
}

// Invoice GET /api/reports/invoice?start=&end=&status=
func (h *ReportHandler) Invoice(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	period, err := parsePeriod(c)
	if err != nil {
		return badRequest(c, "período inválido")
	}
	var status *entity.InvoiceStatus
	if s := c.Query("status"); s != "" {
		parsed, ok := entity.ParseInvoiceStatus(s)
		if !ok {
			return badRequest(c, "status desconocido")
		}
		status = &parsed
	}
	report, err := h.uc.InvoiceReport(c.Context(), userID, period, status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(report)
}

// InvoiceByStatus GET /api/reports/invoicebystatus?start=&end=
func (h *ReportHandler) InvoiceByStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	period, err := parsePeriod(c)
	if err != nil {
		return badRequest(c, "período inválido")
	}
	report, err := h.uc.InvoiceByStatusReport(c.Context(), userID, period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(report)
}
