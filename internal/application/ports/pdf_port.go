package ports

import (
	"context"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// CompanyInfo identidad de la empresa emisora que encabeza el PDF.
type CompanyInfo struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
}

// InvoicePDFGenerator define el puerto de salida para exportar una factura
// como documento PDF. El adaptador recibe el agregado completo (factura con
// líneas, cliente y usuario emisor) y devuelve los bytes del documento.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		inv *entity.Invoice,
		user *entity.User,
		customer *entity.Customer,
		company CompanyInfo,
	) ([]byte, error)
}
