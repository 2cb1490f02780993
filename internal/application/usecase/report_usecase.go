package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// Estados no iniciales sobre los que se desglosa el reporte por estado.
var reportStatuses = []entity.InvoiceStatus{
	entity.InvoiceStatusSent,
	entity.InvoiceStatusReceived,
	entity.InvoiceStatusPaid,
	entity.InvoiceStatusCancelled,
	entity.InvoiceStatusRejected,
}

// ReportUseCase calcula reportes agregados acotados a un período y al usuario
// que los pide. El período se valida antes de tocar el almacén.
type ReportUseCase struct {
	reports repository.ReportRepository
	audit   ports.AuditLogger

	// now es inyectable para fijar el reloj en los tests.
	now func() time.Time
}

// NewReportUseCase construye el caso de uso con el puerto de lectura.
func NewReportUseCase(reports repository.ReportRepository, audit ports.AuditLogger) *ReportUseCase {
	return &ReportUseCase{reports: reports, audit: audit, now: time.Now}
}

// CheckPeriod valida el período contra el reloj: los reportes solo cubren
// tiempo transcurrido, así que un límite en el futuro es inválido, igual que
// start > end. Un límite ausente significa no acotado por ese lado.
func (uc *ReportUseCase) CheckPeriod(period dto.TimePeriod) error {
	now := uc.now()
	if period.Start != nil && period.Start.After(now) {
		return fmt.Errorf("%w: el inicio del período está en el futuro", domain.ErrBusinessRule)
	}
	if period.End != nil && period.End.After(now) {
		return fmt.Errorf("%w: el fin del período está en el futuro", domain.ErrBusinessRule)
	}
	if period.Start != nil && period.End != nil && period.Start.After(*period.End) {
		return fmt.Errorf("%w: el inicio del período no puede ser mayor que el fin", domain.ErrBusinessRule)
	}
	return nil
}

// CustomerReport calcula los promedios por cliente sobre las facturas creadas
// dentro del período. Sin clientes o sin facturas devuelve el reporte en cero
// en lugar de dividir por cero.
func (uc *ReportUseCase) CustomerReport(ctx context.Context, userID string, period dto.TimePeriod) (*dto.CustomerReport, error) {
	if err := uc.CheckPeriod(period); err != nil {
		return nil, err
	}

	customers, err := uc.reports.CountCustomers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customers <= 0 {
		return &dto.CustomerReport{}, nil
	}

	stats, err := uc.reports.AggregateInvoices(ctx, userID, period.Start, period.End, nil)
	if err != nil {
		return nil, err
	}
	if stats.Count <= 0 {
		return &dto.CustomerReport{}, nil
	}

	customerCount := decimal.NewFromInt(int64(customers))
	invoiceCount := decimal.NewFromInt(int64(stats.Count))

	uc.audit.LogReportAction(userID, "customer")

	return &dto.CustomerReport{
		AverageInvoicePerCustomer:      invoiceCount.Div(customerCount),
		AverageInvoicePricePerCustomer: stats.Total.Div(invoiceCount),
		AverageCostPerCustomer:         stats.Total.Div(customerCount),
	}, nil
}

// InvoiceReport calcula conteo, costo total y precio promedio de las facturas
// del período, opcionalmente filtradas a un único estado.
func (uc *ReportUseCase) InvoiceReport(ctx context.Context, userID string, period dto.TimePeriod, status *entity.InvoiceStatus) (*dto.InvoiceReport, error) {
	if err := uc.CheckPeriod(period); err != nil {
		return nil, err
	}

	report, err := uc.invoiceReport(ctx, userID, period, status)
	if err != nil {
		return nil, err
	}

	uc.audit.LogReportAction(userID, "invoice")
	return report, nil
}

// InvoiceByStatusReport calcula el reporte de facturas por separado para cada
// estado no inicial sobre el mismo período.
func (uc *ReportUseCase) InvoiceByStatusReport(ctx context.Context, userID string, period dto.TimePeriod) (*dto.InvoiceByStatusReport, error) {
	if err := uc.CheckPeriod(period); err != nil {
		return nil, err
	}

	out := &dto.InvoiceByStatusReport{}
	targets := map[entity.InvoiceStatus]*dto.InvoiceReport{
		entity.InvoiceStatusSent:      &out.Sent,
		entity.InvoiceStatusReceived:  &out.Received,
		entity.InvoiceStatusPaid:      &out.Paid,
		entity.InvoiceStatusCancelled: &out.Cancelled,
		entity.InvoiceStatusRejected:  &out.Rejected,
	}
	for _, status := range reportStatuses {
		status := status
		report, err := uc.invoiceReport(ctx, userID, period, &status)
		if err != nil {
			return nil, err
		}
		*targets[status] = *report
	}

	uc.audit.LogReportAction(userID, "invoice_by_status")
	return out, nil
}

func (uc *ReportUseCase) invoiceReport(ctx context.Context, userID string, period dto.TimePeriod, status *entity.InvoiceStatus) (*dto.InvoiceReport, error) {
	stats, err := uc.reports.AggregateInvoices(ctx, userID, period.Start, period.End, status)
	if err != nil {
		return nil, err
	}
	if stats.Count <= 0 {
		return &dto.InvoiceReport{}, nil
	}
	return &dto.InvoiceReport{
		TotalInvoiceCount: stats.Count,
		TotalCost:         stats.Total,
		AveragePrice:      stats.Total.Div(decimal.NewFromInt(int64(stats.Count))),
	}, nil
}
