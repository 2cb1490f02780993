package repository

import (
	"context"

	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La implementación vive en infrastructure.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// GetByID devuelve el usuario activo con ese id, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail devuelve el usuario con ese email (cualquier estado), o nil.
	// El email se compara ya normalizado a minúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error

	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
