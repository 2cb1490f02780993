package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// InvoiceRepository implementación PostgreSQL del repositorio de facturas.
// Cargar una factura carga siempre sus líneas en orden de inserción.
type InvoiceRepository struct {
	db Querier
}

// NewInvoiceRepository crea un repositorio de facturas. Acepta pool o
// transacción: el TxRunner lo instancia sobre pgx.Tx.
func NewInvoiceRepository(db Querier) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

const invoiceColumns = `id, user_id, customer_id, total_sum, discount, comment, status, entity_status, start_date, end_date, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv      entity.Invoice
		discount decimal.NullDecimal
	)
	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.CustomerID,
		&inv.TotalSum,
		&discount,
		&inv.Comment,
		&inv.Status,
		&inv.EntityStatus,
		&inv.StartDate,
		&inv.EndDate,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if discount.Valid {
		inv.Discount = &discount.Decimal
	}
	return &inv, nil
}

func nullDiscount(inv *entity.Invoice) decimal.NullDecimal {
	if inv.Discount == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *inv.Discount, Valid: true}
}

// Create persiste cabecera y líneas iniciales en una sola transacción lógica
// del caller (las líneas van en batch).
func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, customer_id, total_sum, discount, comment, status, entity_status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		inv.ID,
		inv.UserID,
		inv.CustomerID,
		inv.TotalSum,
		nullDiscount(inv),
		inv.Comment,
		inv.Status,
		inv.EntityStatus,
		inv.StartDate,
		inv.EndDate,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("crear factura: %w", err)
	}
	if len(inv.Rows) > 0 {
		if err := r.InsertRows(ctx, inv.Rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepository) getOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil
	}
	if err := r.loadRows(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID devuelve la factura activa del usuario con sus líneas, o nil.
func (r *InvoiceRepository) GetByID(ctx context.Context, userID, invoiceID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE id = $1 AND user_id = $2 AND entity_status = $3`

	return r.getOne(ctx, query, invoiceID, userID, entity.EntityStatusActive)
}

// GetByIDAnyStatus devuelve la factura del usuario sin filtrar por EntityStatus.
func (r *InvoiceRepository) GetByIDAnyStatus(ctx context.Context, userID, invoiceID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND user_id = $2`

	return r.getOne(ctx, query, invoiceID, userID)
}

// ListByUser devuelve una página de facturas activas del usuario con sus
// líneas y el total sin paginar. La búsqueda aplica sobre la descripción de
// servicio de las líneas; el orden es por TotalSum.
func (r *InvoiceRepository) ListByUser(ctx context.Context, userID string, q repository.ListQuery) ([]*entity.Invoice, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM invoices i
		WHERE i.user_id = $1 AND i.entity_status = $2
		  AND ($3 = '' OR EXISTS (
			SELECT 1 FROM invoice_rows r
			WHERE r.invoice_id = i.id AND r.service ILIKE '%' || $3 || '%'))`

	var total int
	if err := r.db.QueryRow(ctx, countQuery, userID, entity.EntityStatusActive, q.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar facturas: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices i
		WHERE i.user_id = $1 AND i.entity_status = $2
		  AND ($3 = '' OR EXISTS (
			SELECT 1 FROM invoice_rows r
			WHERE r.invoice_id = i.id AND r.service ILIKE '%' || $3 || '%'))
		ORDER BY i.total_sum ` + sortDirection(q.Sort) + `, i.created_at ASC
		LIMIT $4 OFFSET $5`

	rows, err := r.db.Query(ctx, query, userID, entity.EntityStatusActive, q.Search, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listar facturas: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("leer factura: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listar facturas: %w", err)
	}

	if err := r.loadRows(ctx, invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// loadRows completa las líneas de las facturas dadas con una sola consulta.
func (r *InvoiceRepository) loadRows(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	byID := make(map[string]*entity.Invoice, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
		byID[inv.ID] = inv
	}

	query := `
		SELECT id, invoice_id, service, quantity, amount, sum
		FROM invoice_rows
		WHERE invoice_id = ANY($1)
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("cargar líneas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row entity.InvoiceRow
		if err := rows.Scan(&row.ID, &row.InvoiceID, &row.Service, &row.Quantity, &row.Amount, &row.Sum); err != nil {
			return fmt.Errorf("leer línea: %w", err)
		}
		inv := byID[row.InvoiceID]
		inv.Rows = append(inv.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cargar líneas: %w", err)
	}
	return nil
}

// UpdateHeader persiste la cabecera de la factura. No toca las líneas.
func (r *InvoiceRepository) UpdateHeader(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET total_sum = $2, discount = $3, comment = $4, status = $5,
		    entity_status = $6, start_date = $7, end_date = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		inv.ID,
		inv.TotalSum,
		nullDiscount(inv),
		inv.Comment,
		inv.Status,
		inv.EntityStatus,
		inv.StartDate,
		inv.EndDate,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InsertRows agrega líneas a una factura existente.
func (r *InvoiceRepository) InsertRows(ctx context.Context, rows []entity.InvoiceRow) error {
	query := `
		INSERT INTO invoice_rows (id, invoice_id, service, quantity, amount, sum)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, row := range rows {
		_, err := r.db.Exec(ctx, query,
			row.ID,
			row.InvoiceID,
			row.Service,
			row.Quantity,
			row.Amount,
			row.Sum,
		)
		if err != nil {
			return fmt.Errorf("insertar línea: %w", err)
		}
	}
	return nil
}

// DeleteRow elimina exactamente la línea con ese id dentro de la factura.
func (r *InvoiceRepository) DeleteRow(ctx context.Context, invoiceID, rowID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM invoice_rows WHERE id = $1 AND invoice_id = $2`, rowID, invoiceID)
	if err != nil {
		return fmt.Errorf("eliminar línea: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente la factura; las líneas caen por cascada del FK.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCustomer cuenta las facturas de un cliente, de cualquier estado.
func (r *InvoiceRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar facturas del cliente: %w", err)
	}
	return count, nil
}

// ExistsByID verifica que exista una factura activa del usuario.
func (r *InvoiceRepository) ExistsByID(ctx context.Context, userID, invoiceID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM invoices WHERE id = $1 AND user_id = $2 AND entity_status = $3)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, invoiceID, userID, entity.EntityStatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("verificar factura: %w", err)
	}
	return exists, nil
}
