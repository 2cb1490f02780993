// Package audit implementa el registro de auditoría sobre zerolog.
// Cada acción queda como un evento estructurado en el log de la aplicación;
// escribir nunca falla ni bloquea la operación que lo origina.
package audit

import (
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/pkg/logger"
)

var _ ports.AuditLogger = (*ZerologAuditLogger)(nil)

// ZerologAuditLogger adaptador de AuditLogger sobre el logger de la aplicación.
type ZerologAuditLogger struct {
	log *logger.Logger
}

// New construye el adaptador con un sublogger etiquetado como auditoría.
func New(log *logger.Logger) *ZerologAuditLogger {
	return &ZerologAuditLogger{log: log}
}

func (a *ZerologAuditLogger) LogUserAction(userID, action string) {
	a.log.Info().
		Str("audit", "user").
		Str("user_id", userID).
		Str("action", action).
		Msg("acción de usuario")
}

func (a *ZerologAuditLogger) LogCustomerAction(customerID, actorUserID, action string) {
	a.log.Info().
		Str("audit", "customer").
		Str("customer_id", customerID).
		Str("user_id", actorUserID).
		Str("action", action).
		Msg("acción de cliente")
}

func (a *ZerologAuditLogger) LogInvoiceAction(invoiceID, actorUserID, action string) {
	a.log.Info().
		Str("audit", "invoice").
		Str("invoice_id", invoiceID).
		Str("user_id", actorUserID).
		Str("action", action).
		Msg("acción de factura")
}

func (a *ZerologAuditLogger) LogReportAction(actorUserID, report string) {
	a.log.Info().
		Str("audit", "report").
		Str("user_id", actorUserID).
		Str("report", report).
		Msg("reporte generado")
}
