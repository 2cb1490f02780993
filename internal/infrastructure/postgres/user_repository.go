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

// UserRepository implementación PostgreSQL del repositorio de usuarios.
type UserRepository struct {
	db Querier
}

// NewUserRepository crea un repositorio de usuarios sobre el pool dado.
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

const userColumns = `id, name, email, password_hash, address, phone_number, entity_status, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Address,
		&u.PhoneNumber,
		&u.EntityStatus,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserta un usuario nuevo.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, address, phone_number, entity_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.PhoneNumber,
		user.EntityStatus,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario activo por su ID. Devuelve nil si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND entity_status = $2`

	user, err := scanUser(r.db.QueryRow(ctx, query, id, entity.EntityStatusActive))
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return user, nil
}

// GetByEmail obtiene un usuario por email sin filtrar por EntityStatus: el
// email sigue reservado aunque la cuenta esté archivada.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("obtener usuario por email: %w", err)
	}
	return user, nil
}

// Update persiste los campos editables del usuario.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, address = $5,
		    phone_number = $6, entity_status = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.PhoneNumber,
		user.EntityStatus,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente al usuario.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByID verifica que exista un usuario activo con ese ID.
func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND entity_status = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id, entity.EntityStatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("verificar usuario: %w", err)
	}
	return exists, nil
}

// ExistsByEmail verifica si el email ya está tomado (cualquier EntityStatus).
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("verificar email: %w", err)
	}
	return exists, nil
}
