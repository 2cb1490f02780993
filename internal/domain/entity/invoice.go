package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de negocio de la factura.
type InvoiceStatus string

const (
	InvoiceStatusCreated   InvoiceStatus = "created"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusReceived  InvoiceStatus = "received"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRejected  InvoiceStatus = "rejected"
)

// ParseInvoiceStatus valida un estado recibido por la API.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch InvoiceStatus(s) {
	case InvoiceStatusCreated, InvoiceStatusSent, InvoiceStatusReceived,
		InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusRejected:
		return InvoiceStatus(s), true
	}
	return "", false
}

// Invoice representa la cabecera de una factura junto con sus líneas.
// La factura es dueña exclusiva de sus Rows: cargarla siempre carga las líneas
// y TotalSum se recalcula de forma síncrona tras cada mutación de líneas o descuento.
type Invoice struct {
	ID           string
	UserID       string
	CustomerID   string
	TotalSum     decimal.Decimal  // precisión completa; el redondeo solo ocurre en presentación
	Discount     *decimal.Decimal // porcentaje 0..100; nil = sin descuento
	Comment      string
	Status       InvoiceStatus
	EntityStatus EntityStatus
	StartDate    *time.Time // se fija al pasar a received
	EndDate      *time.Time // se fija al pasar a paid
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Rows         []InvoiceRow
}
