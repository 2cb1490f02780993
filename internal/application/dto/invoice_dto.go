package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Rows es opcional: la factura puede nacer vacía y recibir líneas después.
type CreateInvoiceRequest struct {
	CustomerID string                    `json:"customer_id"`
	Discount   *decimal.Decimal          `json:"discount"`
	Comment    string                    `json:"comment,omitempty"`
	Rows       []CreateInvoiceRowRequest `json:"rows,omitempty"`
}

// CreateInvoiceRowRequest línea de factura (servicio, cantidad, precio unitario).
type CreateInvoiceRowRequest struct {
	Service  string          `json:"service"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// EditInvoiceRequest body para PUT /api/invoices/:id. Campos nil = sin cambio.
type EditInvoiceRequest struct {
	Discount *decimal.Decimal `json:"discount"`
	Comment  *string          `json:"comment"`
}

// ChangeInvoiceStatusRequest body para PUT /api/invoices/:id/status.
type ChangeInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse factura con sus líneas. Los montos van redondeados a dos
// decimales (mitad alejándose de cero): este es el borde de presentación,
// la entidad persiste precisión completa.
type InvoiceResponse struct {
	ID           string               `json:"id"`
	CustomerID   string               `json:"customer_id"`
	TotalSum     decimal.Decimal      `json:"total_sum"`
	Discount     *decimal.Decimal     `json:"discount,omitempty"`
	Comment      string               `json:"comment,omitempty"`
	Status       string               `json:"status"`
	EntityStatus string               `json:"entity_status"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Rows         []InvoiceRowResponse `json:"rows"`
}

// InvoiceRowResponse línea en la respuesta, con Sum redondeado a dos decimales.
type InvoiceRowResponse struct {
	ID       string          `json:"id"`
	Service  string          `json:"service"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Sum      decimal.Decimal `json:"sum"`
}
