package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	domInvoice "github.com/jhoicas/invoices-api/internal/domain/invoice"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con un InvoiceRepository atado a una transacción.
// Las mutaciones de líneas y la cabecera recalculada se aplican juntas o no se
// aplican: una mutación parcial sin recálculo dejaría TotalSum inconsistente.
type TxRunner interface {
	Run(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
}

// InvoiceUseCase aplica las reglas de negocio de facturas: orquesta el motor
// de recálculo y la máquina de estados, y serializa los read-modify-write por
// factura con un candado por id (el almacén solo garantiza last-write-wins).
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	tx        TxRunner
	audit     ports.AuditLogger
	locks     keyedMutex
}

// NewInvoiceUseCase construye el caso de uso con sus puertos.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	tx TxRunner,
	audit ports.AuditLogger,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, customers: customers, users: users, tx: tx, audit: audit}
}

// List devuelve las facturas activas del usuario; el filtro busca por
// substring en la descripción de servicio de las líneas y el orden es por
// TotalSum ascendente o descendente.
func (uc *InvoiceUseCase) List(
	ctx context.Context,
	userID string,
	page dto.PageRequest,
	filter dto.ListFilter,
) (*dto.PaginatedList[*dto.InvoiceResponse], error) {
	page.DefaultPage()

	list, total, err := uc.invoices.ListByUser(ctx, userID, toListQuery(page, filter))
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceResponse(inv))
	}
	return &dto.PaginatedList[*dto.InvoiceResponse]{
		Items: items,
		Meta:  dto.NewPageMeta(page.Page, page.PageSize, total),
	}, nil
}

// Get obtiene una factura activa del usuario con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// Create crea una factura en estado created para un cliente del usuario, con
// un lote inicial de líneas opcional. El total se calcula antes de persistir.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	owned, err := uc.customers.ExistsByID(ctx, userID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, fmt.Errorf("%w: cliente inexistente", domain.ErrNotFound)
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		UserID:       userID,
		CustomerID:   in.CustomerID,
		Discount:     in.Discount,
		Comment:      in.Comment,
		Status:       entity.InvoiceStatusCreated,
		EntityStatus: entity.EntityStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, r := range in.Rows {
		inv.Rows = append(inv.Rows, domInvoice.NewRow(inv.ID, r.Service, r.Quantity, r.Amount))
	}
	domInvoice.Recalculate(inv)

	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.LogInvoiceAction(inv.ID, userID, ports.ActionCreated)
	return toInvoiceResponse(inv), nil
}

// Edit aplica patch sobre comentario y descuento. Un cambio de descuento
// recalcula el total en la misma operación.
func (uc *InvoiceUseCase) Edit(ctx context.Context, userID, invoiceID string, in dto.EditInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if in.Comment != nil {
		inv.Comment = *in.Comment
	}
	if in.Discount != nil {
		inv.Discount = in.Discount
	}
	domInvoice.Recalculate(inv)
	domInvoice.Touch(inv, time.Now())

	if err := uc.invoices.UpdateHeader(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, ports.ActionEdited)
	return toInvoiceResponse(inv), nil
}

// ChangeStatus aplica la transición de estado indicada por el cliente de la
// API, con sus efectos de fechas, y registra la auditoría con el estado nuevo.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, userID, invoiceID string, target entity.InvoiceStatus) (*dto.InvoiceResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if err := domInvoice.Transition(inv, target, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.invoices.UpdateHeader(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, string(target))
	return toInvoiceResponse(inv), nil
}

// Archive marca la factura como archivada (borrado blando). Es la alternativa
// al borrado físico para facturas ya en proceso.
func (uc *InvoiceUseCase) Archive(ctx context.Context, userID, invoiceID string) error {
	if err := uc.requireUser(ctx, userID); err != nil {
		return err
	}

	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	inv.EntityStatus = entity.EntityStatusArchived
	domInvoice.Touch(inv, time.Now())
	if err := uc.invoices.UpdateHeader(ctx, inv); err != nil {
		return err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, ports.ActionArchived)
	return nil
}

// Delete elimina físicamente una factura y sus líneas. Solo se permite
// mientras el estado sea created, cancelled o rejected; en sent, received o
// paid la factura está en proceso o terminada y debe archivarse.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, invoiceID string) error {
	if err := uc.requireUser(ctx, userID); err != nil {
		return err
	}

	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByIDAnyStatus(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	if !domInvoice.Deletable(inv.Status) {
		return fmt.Errorf("%w: la factura está en proceso o terminada, archívela en su lugar", domain.ErrBusinessRule)
	}

	if err := uc.invoices.Delete(ctx, invoiceID); err != nil {
		return err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, ports.ActionDeleted)
	return nil
}

/* Líneas de factura */

// AddRow agrega una línea y recalcula el total en la misma transacción.
func (uc *InvoiceUseCase) AddRow(ctx context.Context, userID, invoiceID string, in dto.CreateInvoiceRowRequest) (*dto.InvoiceResponse, error) {
	return uc.addRows(ctx, userID, invoiceID, []dto.CreateInvoiceRowRequest{in}, ports.ActionRowAdded)
}

// AddRowRange agrega un lote de líneas y recalcula el total una sola vez.
func (uc *InvoiceUseCase) AddRowRange(ctx context.Context, userID, invoiceID string, in []dto.CreateInvoiceRowRequest) (*dto.InvoiceResponse, error) {
	return uc.addRows(ctx, userID, invoiceID, in, ports.ActionRowRangeAdded)
}

func (uc *InvoiceUseCase) addRows(ctx context.Context, userID, invoiceID string, in []dto.CreateInvoiceRowRequest, action string) (*dto.InvoiceResponse, error) {
	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	rows := make([]entity.InvoiceRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, domInvoice.NewRow(inv.ID, r.Service, r.Quantity, r.Amount))
	}
	inv.Rows = append(inv.Rows, rows...)
	domInvoice.Recalculate(inv)
	domInvoice.Touch(inv, time.Now())

	err = uc.tx.Run(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.InsertRows(ctx, rows); err != nil {
			return err
		}
		return invoices.UpdateHeader(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, action)
	return toInvoiceResponse(inv), nil
}

// DeleteRow elimina exactamente la línea indicada y recalcula el total en la
// misma transacción. Una línea inexistente responde no encontrado.
func (uc *InvoiceUseCase) DeleteRow(ctx context.Context, userID, invoiceID, rowID string) (*dto.InvoiceResponse, error) {
	unlock := uc.locks.Lock(invoiceID)
	defer unlock()

	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	if !domInvoice.RemoveRow(inv, rowID) {
		return nil, fmt.Errorf("%w: línea inexistente", domain.ErrNotFound)
	}
	domInvoice.Recalculate(inv)
	domInvoice.Touch(inv, time.Now())

	err = uc.tx.Run(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.DeleteRow(ctx, invoiceID, rowID); err != nil {
			return err
		}
		return invoices.UpdateHeader(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.LogInvoiceAction(invoiceID, userID, ports.ActionRowDeleted)
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) requireUser(ctx context.Context, userID string) error {
	exists, err := uc.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: usuario inexistente", domain.ErrNotFound)
	}
	return nil
}
