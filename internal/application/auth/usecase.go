package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
	"github.com/jhoicas/invoices-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	audit    ports.AuditLogger
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, audit ports.AuditLogger, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, audit: audit, jwtCfg: jwtCfg}
}

// Register crea un usuario: normaliza el email a minúsculas, hashea el password
// con bcrypt y emite un JWT. El email de usuario es único global; si ya existe
// devuelve ErrConflict.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthTokenResponse, error) {
	email := strings.ToLower(in.Email)

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		EntityStatus: entity.EntityStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.LogUserAction(user.ID, ports.ActionRegistered)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthTokenResponse{AccessToken: token}, nil
}

// Login verifica email/password y emite un JWT.
// Email desconocido devuelve ErrNotFound; password incorrecto, ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthTokenResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	uc.audit.LogUserAction(user.ID, ports.ActionLogged)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthTokenResponse{AccessToken: token}, nil
}
