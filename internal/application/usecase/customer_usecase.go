package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// CustomerUseCase aplica reglas de negocio para clientes. Toda operación está
// acotada al usuario dueño: un cliente ajeno se responde como no encontrado,
// sin revelar su existencia.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	users     repository.UserRepository
	audit     ports.AuditLogger
}

// NewCustomerUseCase construye el caso de uso con sus puertos.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	users repository.UserRepository,
	audit ports.AuditLogger,
) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, invoices: invoices, users: users, audit: audit}
}

// List devuelve los clientes activos del usuario, paginados 1-indexado, con
// filtro por substring de nombre y orden asc/desc por nombre.
func (uc *CustomerUseCase) List(
	ctx context.Context,
	userID string,
	page dto.PageRequest,
	filter dto.ListFilter,
) (*dto.PaginatedList[*dto.CustomerResponse], error) {
	page.DefaultPage()

	list, total, err := uc.customers.ListByUser(ctx, userID, toListQuery(page, filter))
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.PaginatedList[*dto.CustomerResponse]{
		Items: items,
		Meta:  dto.NewPageMeta(page.Page, page.PageSize, total),
	}, nil
}

// Get obtiene un cliente activo del usuario.
func (uc *CustomerUseCase) Get(ctx context.Context, userID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Create crea un cliente del usuario. El email debe ser único entre los
// clientes de ese usuario; el mismo email bajo otro usuario es válido.
func (uc *CustomerUseCase) Create(ctx context.Context, userID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	email := strings.ToLower(in.Email)
	existing, err := uc.customers.GetByEmail(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con ese email", domain.ErrConflict)
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		Address:      in.Address,
		CreditCard:   in.CreditCard,
		Email:        email,
		PhoneNumber:  in.PhoneNumber,
		EntityStatus: entity.EntityStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.audit.LogCustomerAction(customer.ID, userID, ports.ActionCreated)
	return toCustomerResponse(customer), nil
}

// Edit aplica semántica de patch sobre el cliente. Un email nuevo re-verifica
// la unicidad dentro del mismo usuario antes de aplicarse.
func (uc *CustomerUseCase) Edit(ctx context.Context, userID, customerID string, in dto.EditCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	customer, err := uc.customers.GetByID(ctx, userID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.CreditCard != nil {
		customer.CreditCard = *in.CreditCard
	}
	if in.PhoneNumber != nil {
		customer.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil && *in.Email != "" {
		email := strings.ToLower(*in.Email)
		other, err := uc.customers.GetByEmail(ctx, userID, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != customer.ID {
			return nil, fmt.Errorf("%w: ya existe un cliente con ese email", domain.ErrConflict)
		}
		customer.Email = email
	}

	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	uc.audit.LogCustomerAction(customerID, userID, ports.ActionEdited)
	return toCustomerResponse(customer), nil
}

// Archive marca el cliente como archivado (borrado blando).
func (uc *CustomerUseCase) Archive(ctx context.Context, userID, customerID string) error {
	if err := uc.requireUser(ctx, userID); err != nil {
		return err
	}

	customer, err := uc.customers.GetByID(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}

	customer.EntityStatus = entity.EntityStatusArchived
	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(ctx, customer); err != nil {
		return err
	}

	uc.audit.LogCustomerAction(customerID, userID, ports.ActionArchived)
	return nil
}

// Delete elimina físicamente un cliente. Solo se permite si el cliente no
// tiene ninguna factura; con facturas la operación viola la regla de negocio.
func (uc *CustomerUseCase) Delete(ctx context.Context, userID, customerID string) error {
	if err := uc.requireUser(ctx, userID); err != nil {
		return err
	}

	customer, err := uc.customers.GetByIDAnyStatus(ctx, userID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}

	count, err := uc.invoices.CountByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: solo pueden eliminarse clientes sin facturas", domain.ErrBusinessRule)
	}

	if err := uc.customers.Delete(ctx, customerID); err != nil {
		return err
	}

	uc.audit.LogCustomerAction(customerID, userID, ports.ActionDeleted)
	return nil
}

// requireUser exige que el usuario exista: solo cuando la verificación
// devuelve false se responde no encontrado.
func (uc *CustomerUseCase) requireUser(ctx context.Context, userID string) error {
	exists, err := uc.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: usuario inexistente", domain.ErrNotFound)
	}
	return nil
}
