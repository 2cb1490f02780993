package ports

// Acciones auditables sobre las entidades. El vocabulario es plano a propósito:
// el registro de auditoría es un evento estructurado, no una máquina de estados.
const (
	ActionCreated         = "created"
	ActionEdited          = "edited"
	ActionArchived        = "archived"
	ActionDeleted         = "deleted"
	ActionRegistered      = "registered"
	ActionLogged          = "logged"
	ActionPasswordChanged = "password_changed"
	ActionRowAdded        = "row_added"
	ActionRowRangeAdded   = "row_range_added"
	ActionRowDeleted      = "row_deleted"
	ActionStatusChanged   = "status_changed"
	ActionReportGenerated = "report_generated"
)

// AuditLogger define el puerto de salida del registro de auditoría.
// Es fire-and-forget: las implementaciones no devuelven error y jamás deben
// abortar la operación que las dispara. El use case registra (entidad, actor,
// acción) después de cada operación aplicada.
type AuditLogger interface {
	LogUserAction(userID, action string)
	LogCustomerAction(customerID, actorUserID, action string)
	LogInvoiceAction(invoiceID, actorUserID, action string)
	LogReportAction(actorUserID, report string)
}
