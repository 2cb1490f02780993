package entity

import "github.com/shopspring/decimal"

// InvoiceRow representa una línea facturable de una factura.
// Sum es derivado: Quantity * Amount.
type InvoiceRow struct {
	ID        string
	InvoiceID string
	Service   string
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
	Sum       decimal.Decimal
}
