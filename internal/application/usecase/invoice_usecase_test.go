package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

type invoiceFixture struct {
	uc         *InvoiceUseCase
	invoices   *fakeInvoiceRepo
	customers  *fakeCustomerRepo
	users      *fakeUserRepo
	audit      *fakeAudit
	userID     string
	customerID string
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	users := newFakeUserRepo()
	customers := newFakeCustomerRepo()
	invoices := newFakeInvoiceRepo()
	audit := &fakeAudit{}

	userID := uuid.New().String()
	users.seed(&entity.User{ID: userID, Email: "ana@example.com", EntityStatus: entity.EntityStatusActive})

	customerID := uuid.New().String()
	customers.seed(&entity.Customer{
		ID:           customerID,
		UserID:       userID,
		Name:         "ACME",
		Email:        "acme@example.com",
		EntityStatus: entity.EntityStatusActive,
	})

	uc := NewInvoiceUseCase(invoices, customers, users, &fakeTxRunner{invoices: invoices}, audit)
	return &invoiceFixture{
		uc: uc, invoices: invoices, customers: customers, users: users,
		audit: audit, userID: userID, customerID: customerID,
	}
}

func (f *invoiceFixture) create(t *testing.T, in dto.CreateInvoiceRequest) *dto.InvoiceResponse {
	t.Helper()
	if in.CustomerID == "" {
		in.CustomerID = f.customerID
	}
	inv, err := f.uc.Create(context.Background(), f.userID, in)
	require.NoError(t, err)
	return inv
}

func TestInvoiceCreate_CalculaTotal(t *testing.T) {
	f := newInvoiceFixture(t)
	discount := mustDec("10")

	inv := f.create(t, dto.CreateInvoiceRequest{
		Discount: &discount,
		Rows: []dto.CreateInvoiceRowRequest{
			{Service: "consultoría", Quantity: mustDec("2"), Amount: mustDec("10")},
			{Service: "soporte", Quantity: mustDec("1"), Amount: mustDec("5")},
		},
	})

	assert.True(t, mustDec("22.5").Equal(inv.TotalSum), "total con descuento debe ser 22.5, fue %s", inv.TotalSum)
	assert.Equal(t, string(entity.InvoiceStatusCreated), inv.Status)
	assert.Len(t, inv.Rows, 2)
	assert.Equal(t, ports.ActionCreated, f.audit.last())
}

func TestInvoiceCreate_ClienteAjeno(t *testing.T) {
	f := newInvoiceFixture(t)
	otherUser := uuid.New().String()
	f.users.seed(&entity.User{ID: otherUser, Email: "otro@example.com", EntityStatus: entity.EntityStatusActive})

	_, err := f.uc.Create(context.Background(), otherUser, dto.CreateInvoiceRequest{CustomerID: f.customerID})

	assert.ErrorIs(t, err, domain.ErrNotFound, "un cliente de otro usuario se comporta como inexistente")
}

func TestInvoiceEdit_DescuentoRecalcula(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{
		Rows: []dto.CreateInvoiceRowRequest{
			{Service: "consultoría", Quantity: mustDec("2"), Amount: mustDec("10")},
		},
	})
	require.True(t, mustDec("20").Equal(inv.TotalSum))

	discount := mustDec("25")
	edited, err := f.uc.Edit(context.Background(), f.userID, inv.ID, dto.EditInvoiceRequest{Discount: &discount})
	require.NoError(t, err)

	assert.True(t, mustDec("15").Equal(edited.TotalSum), "cambiar el descuento debe recalcular, fue %s", edited.TotalSum)

	stored := f.invoices.stored(inv.ID)
	assert.True(t, mustDec("15").Equal(stored.TotalSum), "el total recalculado debe persistirse")
}

func TestInvoiceAddRow_DeleteRow_RoundTrip(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{
		Rows: []dto.CreateInvoiceRowRequest{
			{Service: "base", Quantity: mustDec("2"), Amount: mustDec("10")},
		},
	})
	before := inv.TotalSum

	withRow, err := f.uc.AddRow(context.Background(), f.userID, inv.ID, dto.CreateInvoiceRowRequest{
		Service: "extra", Quantity: mustDec("1"), Amount: mustDec("5"),
	})
	require.NoError(t, err)
	require.Len(t, withRow.Rows, 2)
	require.False(t, before.Equal(withRow.TotalSum))

	var extraID string
	for _, r := range withRow.Rows {
		if r.Service == "extra" {
			extraID = r.ID
		}
	}
	require.NotEmpty(t, extraID)

	after, err := f.uc.DeleteRow(context.Background(), f.userID, inv.ID, extraID)
	require.NoError(t, err)

	assert.Len(t, after.Rows, 1)
	assert.True(t, before.Equal(after.TotalSum), "quitar la línea agregada debe devolver el total a %s, fue %s", before, after.TotalSum)
}

func TestInvoiceDeleteRow_Inexistente(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{
		Rows: []dto.CreateInvoiceRowRequest{
			{Service: "base", Quantity: mustDec("1"), Amount: mustDec("10")},
		},
	})

	_, err := f.uc.DeleteRow(context.Background(), f.userID, inv.ID, "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceAddRowRange_RecalculaUnaVez(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})
	require.True(t, inv.TotalSum.IsZero())

	out, err := f.uc.AddRowRange(context.Background(), f.userID, inv.ID, []dto.CreateInvoiceRowRequest{
		{Service: "a", Quantity: mustDec("2"), Amount: mustDec("10")},
		{Service: "b", Quantity: mustDec("1"), Amount: mustDec("5")},
	})
	require.NoError(t, err)

	assert.Len(t, out.Rows, 2)
	assert.True(t, mustDec("25").Equal(out.TotalSum), "el lote completo debe reflejarse en el total, fue %s", out.TotalSum)
	assert.Equal(t, ports.ActionRowRangeAdded, f.audit.last())
}

func TestInvoiceChangeStatus_FechasDeCiclo(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	received, err := f.uc.ChangeStatus(context.Background(), f.userID, inv.ID, entity.InvoiceStatusReceived)
	require.NoError(t, err)
	require.NotNil(t, received.StartDate)
	assert.Nil(t, received.EndDate)

	paid, err := f.uc.ChangeStatus(context.Background(), f.userID, inv.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, paid.EndDate)
	assert.Equal(t, *received.StartDate, *paid.StartDate, "StartDate no debe reescribirse al pagar")
}

func TestInvoiceChangeStatus_CreatedRechazado(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	_, err := f.uc.ChangeStatus(context.Background(), f.userID, inv.ID, entity.InvoiceStatusCreated)

	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestInvoiceDelete_GuardaDeEstado(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	// En sent la factura está en proceso: el borrado físico se bloquea.
	_, err := f.uc.ChangeStatus(context.Background(), f.userID, inv.ID, entity.InvoiceStatusSent)
	require.NoError(t, err)
	err = f.uc.Delete(context.Background(), f.userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	// Cancelada vuelve a ser borrable.
	_, err = f.uc.ChangeStatus(context.Background(), f.userID, inv.ID, entity.InvoiceStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), f.userID, inv.ID))

	assert.Nil(t, f.invoices.stored(inv.ID), "la factura debe desaparecer del almacén")
}

func TestInvoiceArchive_SaleDeLosListados(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	require.NoError(t, f.uc.Archive(context.Background(), f.userID, inv.ID))

	_, err := f.uc.Get(context.Background(), f.userID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una factura archivada no es visible por Get")
}

func TestInvoiceList_BusquedaPorServicioYOrden(t *testing.T) {
	f := newInvoiceFixture(t)
	f.create(t, dto.CreateInvoiceRequest{Rows: []dto.CreateInvoiceRowRequest{
		{Service: "hosting anual", Quantity: mustDec("1"), Amount: mustDec("300")},
	}})
	f.create(t, dto.CreateInvoiceRequest{Rows: []dto.CreateInvoiceRowRequest{
		{Service: "consultoría", Quantity: mustDec("1"), Amount: mustDec("100")},
	}})
	f.create(t, dto.CreateInvoiceRequest{Rows: []dto.CreateInvoiceRowRequest{
		{Service: "hosting mensual", Quantity: mustDec("1"), Amount: mustDec("30")},
	}})

	list, err := f.uc.List(context.Background(), f.userID,
		dto.PageRequest{Page: 1, PageSize: 10},
		dto.ListFilter{SearchInput: "hosting", Sorting: "desc"})
	require.NoError(t, err)

	require.Len(t, list.Items, 2, "solo las facturas con líneas 'hosting' deben aparecer")
	assert.True(t, list.Items[0].TotalSum.GreaterThan(list.Items[1].TotalSum), "orden descendente por total")
}

func TestInvoiceAddRow_Concurrente(t *testing.T) {
	// N AddRow concurrentes sobre la misma factura: el candado por factura
	// serializa los read-modify-write y el total final cuenta todas las líneas.
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.AddRow(context.Background(), f.userID, inv.ID, dto.CreateInvoiceRowRequest{
				Service: "unidad", Quantity: mustDec("1"), Amount: mustDec("1"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored := f.invoices.stored(inv.ID)
	require.NotNil(t, stored)
	assert.Len(t, stored.Rows, n)
	assert.True(t, mustDec("20").Equal(stored.TotalSum),
		"TotalSum debe reflejar las %d líneas, fue %s", n, stored.TotalSum)
}

func TestInvoicePDFDownload_FacturaArchivada(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{Rows: []dto.CreateInvoiceRowRequest{
		{Service: "consultoría", Quantity: mustDec("1"), Amount: mustDec("100")},
	}})
	require.NoError(t, f.uc.Archive(context.Background(), f.userID, inv.ID))

	gen := &stubPDFGenerator{payload: []byte("%PDF-fake")}
	pdfUC := NewInvoicePDFUseCase(f.invoices, f.customers, f.users, gen, ports.CompanyInfo{Name: "Empresa"})

	out, err := pdfUC.Download(context.Background(), f.userID, inv.ID)
	require.NoError(t, err, "una factura archivada sigue siendo descargable")
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, inv.ID, gen.lastInvoiceID)
}

func TestInvoicePDFDownload_FacturaAjena(t *testing.T) {
	f := newInvoiceFixture(t)
	inv := f.create(t, dto.CreateInvoiceRequest{})

	otherUser := uuid.New().String()
	f.users.seed(&entity.User{ID: otherUser, Email: "otro@example.com", EntityStatus: entity.EntityStatusActive})

	pdfUC := NewInvoicePDFUseCase(f.invoices, f.customers, f.users, &stubPDFGenerator{}, ports.CompanyInfo{})

	_, err := pdfUC.Download(context.Background(), otherUser, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type stubPDFGenerator struct {
	payload       []byte
	lastInvoiceID string
}

func (s *stubPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.User, _ *entity.Customer, _ ports.CompanyInfo) ([]byte, error) {
	s.lastInvoiceID = inv.ID
	return s.payload, nil
}

// La paginación es 1-indexada: 23 elementos con páginas de 10 dan 3 páginas.
func TestInvoiceList_Paginacion(t *testing.T) {
	f := newInvoiceFixture(t)
	for i := 0; i < 23; i++ {
		f.create(t, dto.CreateInvoiceRequest{})
	}

	page3, err := f.uc.List(context.Background(), f.userID,
		dto.PageRequest{Page: 3, PageSize: 10}, dto.ListFilter{})
	require.NoError(t, err)

	assert.Len(t, page3.Items, 3)
	assert.Equal(t, 3, page3.Meta.TotalPages)
	assert.Equal(t, 3, page3.Meta.Page)

	empty, err := f.uc.List(context.Background(), f.userID,
		dto.PageRequest{Page: 4, PageSize: 10}, dto.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty.Items, "una página más allá del total responde vacía, no error")
}
