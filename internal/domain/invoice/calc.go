// Package invoice contiene el núcleo de negocio de las facturas: el motor de
// recálculo de totales y la máquina de estados del ciclo de vida. Son funciones
// puras sin acceso a la base de datos; los use cases las invocan tras cada
// mutación y persisten el resultado.
package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// NewRow construye una línea de factura con su Sum derivado (Quantity * Amount).
func NewRow(invoiceID, service string, quantity, amount decimal.Decimal) entity.InvoiceRow {
	return entity.InvoiceRow{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		Service:   service,
		Quantity:  quantity,
		Amount:    amount,
		Sum:       quantity.Mul(amount),
	}
}

// Recalculate recalcula TotalSum desde las líneas y el descuento:
//
//	subtotal = Σ row.Sum
//	total    = subtotal - subtotal*descuento/100   (descuento nil = 0)
//
// Debe invocarse tras cada mutación estructural de las líneas (alta individual,
// alta por lote, borrado, creación inicial) y tras editar el descuento.
// Se persiste con precisión completa; el redondeo a 2 decimales ocurre solo en
// los bordes de presentación (DTO y PDF) para no acumular error de redondeo.
func Recalculate(inv *entity.Invoice) {
	subtotal := decimal.Zero
	for _, row := range inv.Rows {
		subtotal = subtotal.Add(row.Sum)
	}

	total := subtotal
	if inv.Discount != nil {
		total = subtotal.Sub(subtotal.Mul(*inv.Discount).Div(hundred))
	}

	inv.TotalSum = total
}

// RemoveRow elimina la línea con el id dado y devuelve true si existía.
// Solo se elimina la línea cuyo id coincide exactamente.
func RemoveRow(inv *entity.Invoice, rowID string) bool {
	for i, row := range inv.Rows {
		if row.ID == rowID {
			inv.Rows = append(inv.Rows[:i], inv.Rows[i+1:]...)
			return true
		}
	}
	return false
}

// Touch actualiza la marca de modificación.
func Touch(inv *entity.Invoice, now time.Time) {
	inv.UpdatedAt = now
}
