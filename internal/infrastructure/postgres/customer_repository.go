package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// CustomerRepository implementación PostgreSQL del repositorio de clientes.
// Toda consulta está acotada por user_id: un usuario nunca ve clientes ajenos.
type CustomerRepository struct {
	db Querier
}

// NewCustomerRepository crea un repositorio de clientes sobre el pool dado.
func NewCustomerRepository(db Querier) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

const customerColumns = `id, user_id, name, address, credit_card, email, phone_number, entity_status, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Address,
		&c.CreditCard,
		&c.Email,
		&c.PhoneNumber,
		&c.EntityStatus,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create inserta un cliente nuevo.
func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, user_id, name, address, credit_card, email, phone_number, entity_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.UserID,
		customer.Name,
		customer.Address,
		customer.CreditCard,
		customer.Email,
		customer.PhoneNumber,
		customer.EntityStatus,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email de cliente ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente activo del usuario. Devuelve nil si no existe.
func (r *CustomerRepository) GetByID(ctx context.Context, userID, customerID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE id = $1 AND user_id = $2 AND entity_status = $3`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, customerID, userID, entity.EntityStatusActive))
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return customer, nil
}

// GetByIDAnyStatus obtiene un cliente del usuario sin filtrar por EntityStatus.
func (r *CustomerRepository) GetByIDAnyStatus(ctx context.Context, userID, customerID string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND user_id = $2`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, customerID, userID))
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return customer, nil
}

// GetByEmail busca un cliente del usuario por email exacto.
func (r *CustomerRepository) GetByEmail(ctx context.Context, userID, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1 AND email = $2`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, userID, email))
	if err != nil {
		return nil, fmt.Errorf("obtener cliente por email: %w", err)
	}
	return customer, nil
}

// ListByUser devuelve una página de clientes activos del usuario junto al
// total de coincidencias. La búsqueda es parcial sobre el nombre.
func (r *CustomerRepository) ListByUser(ctx context.Context, userID string, q repository.ListQuery) ([]*entity.Customer, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM customers
		WHERE user_id = $1 AND entity_status = $2
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%')`

	var total int
	if err := r.db.QueryRow(ctx, countQuery, userID, entity.EntityStatusActive, q.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("contar clientes: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE user_id = $1 AND entity_status = $2
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY name ` + sortDirection(q.Sort) + `, created_at ASC
		LIMIT $4 OFFSET $5`

	rows, err := r.db.Query(ctx, query, userID, entity.EntityStatusActive, q.Search, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("leer cliente: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listar clientes: %w", err)
	}
	return customers, total, nil
}

// Update persiste los campos editables del cliente.
func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, address = $4, credit_card = $5, email = $6,
		    phone_number = $7, entity_status = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.UserID,
		customer.Name,
		customer.Address,
		customer.CreditCard,
		customer.Email,
		customer.PhoneNumber,
		customer.EntityStatus,
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email de cliente ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente un cliente. La pertenencia ya fue verificada por
// el use case con GetByIDAnyStatus.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByID verifica que exista un cliente activo del usuario.
func (r *CustomerRepository) ExistsByID(ctx context.Context, userID, customerID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND user_id = $2 AND entity_status = $3)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID, userID, entity.EntityStatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("verificar cliente: %w", err)
	}
	return exists, nil
}
