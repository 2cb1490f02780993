package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// InvoiceStats resultado crudo de la agregación de facturas de un período.
// Lo produce la DB; el use case lo convierte en reporte.
type InvoiceStats struct {
	Count int
	Total decimal.Decimal
}

// ReportRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only. Los límites del período aplican sobre
// CreatedAt; un límite nil significa no acotado por ese lado.
type ReportRepository interface {
	// CountCustomers cuenta los clientes del usuario.
	CountCustomers(ctx context.Context, userID string) (int, error)

	// AggregateInvoices cuenta y suma TotalSum de las facturas del usuario
	// creadas dentro del período, opcionalmente filtradas por estado.
	// Usa COALESCE para devolver cero si no hay facturas en el período.
	AggregateInvoices(
		ctx context.Context,
		userID string,
		start, end *time.Time,
		status *entity.InvoiceStatus,
	) (InvoiceStats, error)
}
