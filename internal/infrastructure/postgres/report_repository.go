package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// ReportRepository consultas read-only de agregación para reportes.
type ReportRepository struct {
	db Querier
}

// NewReportRepository crea el repositorio de reportes sobre el pool dado.
func NewReportRepository(db Querier) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ repository.ReportRepository = (*ReportRepository)(nil)

// CountCustomers cuenta los clientes activos del usuario.
func (r *ReportRepository) CountCustomers(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE user_id = $1 AND entity_status = $2`,
		userID, entity.EntityStatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar clientes: %w", err)
	}
	return count, nil
}

// AggregateInvoices cuenta y suma TotalSum de las facturas del usuario creadas
// dentro del período. Límite nil = no acotado por ese lado; status nil = todas.
func (r *ReportRepository) AggregateInvoices(
	ctx context.Context,
	userID string,
	start, end *time.Time,
	status *entity.InvoiceStatus,
) (repository.InvoiceStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_sum), 0)
		FROM invoices
		WHERE user_id = $1 AND entity_status = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		  AND ($5::text IS NULL OR status = $5)`

	var stats repository.InvoiceStats
	err := r.db.QueryRow(ctx, query, userID, entity.EntityStatusActive, start, end, status).
		Scan(&stats.Count, &stats.Total)
	if err != nil {
		return repository.InvoiceStats{}, fmt.Errorf("agregar facturas: %w", err)
	}
	return stats, nil
}
