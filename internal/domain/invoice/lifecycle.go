package invoice

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// Transition aplica un cambio de estado de negocio sobre una factura existente.
// El estado destino lo indica el cliente de la API, no se infiere:
//
//   - created   → rechazado: una factura existente no puede volver a created
//   - received  → fija StartDate = now
//   - paid      → fija EndDate = now
//   - sent, cancelled, rejected → solo cambian el estado
//
// Toda transición válida actualiza UpdatedAt. Salir de cancelled o rejected
// hacia otro estado activo está permitido a propósito (ver DESIGN.md).
func Transition(inv *entity.Invoice, target entity.InvoiceStatus, now time.Time) error {
	switch target {
	case entity.InvoiceStatusCreated:
		return fmt.Errorf("%w: una factura existente no puede volver al estado created", domain.ErrBusinessRule)
	case entity.InvoiceStatusReceived:
		inv.Status = entity.InvoiceStatusReceived
		inv.StartDate = &now
	case entity.InvoiceStatusPaid:
		inv.Status = entity.InvoiceStatusPaid
		inv.EndDate = &now
	case entity.InvoiceStatusSent, entity.InvoiceStatusCancelled, entity.InvoiceStatusRejected:
		inv.Status = target
	default:
		return fmt.Errorf("%w: estado de factura desconocido %q", domain.ErrInvalidInput, target)
	}

	inv.UpdatedAt = now
	return nil
}

// Deletable indica si una factura en el estado dado admite borrado físico.
// sent, received y paid lo bloquean: la factura ya está en proceso o terminada
// y solo puede archivarse.
func Deletable(status entity.InvoiceStatus) bool {
	switch status {
	case entity.InvoiceStatusCreated, entity.InvoiceStatusCancelled, entity.InvoiceStatusRejected:
		return true
	default:
		return false
	}
}
