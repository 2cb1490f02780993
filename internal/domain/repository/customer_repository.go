package repository

import (
	"context"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las consultas están acotadas al usuario dueño: un cliente de otro
// usuario se comporta como inexistente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error

	// GetByID devuelve el cliente activo del usuario, o nil si no existe.
	GetByID(ctx context.Context, userID, customerID string) (*entity.Customer, error)

	// GetByIDAnyStatus ignora EntityStatus (lo usa el borrado físico).
	GetByIDAnyStatus(ctx context.Context, userID, customerID string) (*entity.Customer, error)

	// GetByEmail devuelve el cliente del usuario con ese email, o nil.
	// La unicidad de email de clientes es por usuario, no global.
	GetByEmail(ctx context.Context, userID, email string) (*entity.Customer, error)

	// ListByUser lista clientes activos del usuario con filtro por substring de
	// nombre y orden por nombre. Devuelve además el total sin paginar.
	ListByUser(ctx context.Context, userID string, q ListQuery) ([]*entity.Customer, int, error)

	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error

	ExistsByID(ctx context.Context, userID, customerID string) (bool, error)
}
