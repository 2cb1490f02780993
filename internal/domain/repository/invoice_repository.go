package repository

import (
	"context"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Cargar una factura carga siempre sus líneas (agregado completo); las
// consultas están acotadas al usuario dueño.
type InvoiceRepository interface {
	// Create persiste la cabecera y sus líneas iniciales.
	Create(ctx context.Context, inv *entity.Invoice) error

	// GetByID devuelve la factura activa del usuario con sus líneas, o nil.
	GetByID(ctx context.Context, userID, invoiceID string) (*entity.Invoice, error)

	// GetByIDAnyStatus ignora EntityStatus (lo usa el borrado físico).
	GetByIDAnyStatus(ctx context.Context, userID, invoiceID string) (*entity.Invoice, error)

	// ListByUser lista facturas activas del usuario. El filtro de búsqueda
	// aplica sobre la descripción de servicio de las líneas; el orden es por
	// TotalSum. Devuelve además el total sin paginar.
	ListByUser(ctx context.Context, userID string, q ListQuery) ([]*entity.Invoice, int, error)

	// UpdateHeader persiste la cabecera (total, descuento, comentario, estados,
	// fechas). No toca las líneas.
	UpdateHeader(ctx context.Context, inv *entity.Invoice) error

	// InsertRows agrega líneas a una factura existente.
	InsertRows(ctx context.Context, rows []entity.InvoiceRow) error

	// DeleteRow elimina exactamente la línea con ese id dentro de la factura.
	DeleteRow(ctx context.Context, invoiceID, rowID string) error

	// Delete elimina físicamente la factura y, por propiedad exclusiva, sus líneas.
	Delete(ctx context.Context, id string) error

	// CountByCustomer cuenta las facturas (de cualquier estado) de un cliente.
	// Alimenta la guarda de borrado de clientes.
	CountByCustomer(ctx context.Context, customerID string) (int, error)

	ExistsByID(ctx context.Context, userID, invoiceID string) (bool, error)
}
