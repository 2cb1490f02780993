package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo  repository.UserRepository
	audit ports.AuditLogger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, audit ports.AuditLogger) *UserUseCase {
	return &UserUseCase{repo: repo, audit: audit}
}

// GetByID obtiene un usuario activo por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// Edit aplica semántica de patch: cada campo presente sobreescribe, los
// ausentes no cambian. Un email nuevo re-verifica la unicidad global antes
// de aplicarse.
func (uc *UserUseCase) Edit(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil && *in.Email != "" {
		email := strings.ToLower(*in.Email)
		if email != user.Email {
			exists, err := uc.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrConflict
			}
			user.Email = email
		}
	}

	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.LogUserAction(user.ID, ports.ActionEdited)
	return toUserResponse(user), nil
}

// ChangePassword verifica la contraseña actual, rechaza reutilizar la anterior
// y persiste un hash bcrypt nuevo.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id string, in dto.ChangePasswordRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return nil, domain.ErrInvalidPassword
	}
	if in.CurrentPassword == in.NewPassword {
		return nil, domain.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.LogUserAction(user.ID, ports.ActionPasswordChanged)
	return toUserResponse(user), nil
}

// Archive marca el usuario como archivado (borrado blando).
func (uc *UserUseCase) Archive(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	user.EntityStatus = entity.EntityStatusArchived
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return err
	}

	uc.audit.LogUserAction(id, ports.ActionArchived)
	return nil
}

// Delete elimina físicamente al usuario activo.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.LogUserAction(id, ports.ActionDeleted)
	return nil
}
