package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// InvoicePDFUseCase arma el agregado completo de una factura y delega la
// generación del documento al adaptador de PDF.
type InvoicePDFUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	generator ports.InvoicePDFGenerator
	company   ports.CompanyInfo
}

// NewInvoicePDFUseCase construye el caso de uso de exportación.
func NewInvoicePDFUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	generator ports.InvoicePDFGenerator,
	company ports.CompanyInfo,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoices:  invoices,
		customers: customers,
		users:     users,
		generator: generator,
		company:   company,
	}
}

// Download genera el PDF de una factura del usuario (cualquier EntityStatus:
// una factura archivada sigue siendo descargable).
func (uc *InvoicePDFUseCase) Download(ctx context.Context, userID, invoiceID string) ([]byte, error) {
	inv, err := uc.invoices.GetByIDAnyStatus(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	customer, err := uc.customers.GetByIDAnyStatus(ctx, userID, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente de la factura inexistente", domain.ErrNotFound)
	}

	return uc.generator.GenerateInvoicePDF(ctx, inv, user, customer, uc.company)
}
