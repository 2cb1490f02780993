package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimePeriod período [start, end] para acotar reportes. Un límite ausente
// significa no acotado por ese lado.
type TimePeriod struct {
	Start *time.Time `query:"start" json:"start,omitempty"`
	End   *time.Time `query:"end" json:"end,omitempty"`
}

// CustomerReport estadísticas de actividad de clientes en un período.
type CustomerReport struct {
	AverageInvoicePerCustomer      decimal.Decimal `json:"average_invoice_per_customer"`
	AverageInvoicePricePerCustomer decimal.Decimal `json:"average_invoice_price_per_customer"`
	AverageCostPerCustomer         decimal.Decimal `json:"average_cost_per_customer"`
}

// InvoiceReport estadísticas de facturas en un período.
type InvoiceReport struct {
	TotalInvoiceCount int             `json:"total_invoice_count"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	AveragePrice      decimal.Decimal `json:"average_price"`
}

// InvoiceByStatusReport el reporte de facturas calculado por separado para
// cada estado no inicial.
type InvoiceByStatusReport struct {
	Sent      InvoiceReport `json:"sent"`
	Received  InvoiceReport `json:"received"`
	Paid      InvoiceReport `json:"paid"`
	Cancelled InvoiceReport `json:"cancelled"`
	Rejected  InvoiceReport `json:"rejected"`
}
