package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
)

type customerFixture struct {
	uc        *CustomerUseCase
	customers *fakeCustomerRepo
	invoices  *fakeInvoiceRepo
	users     *fakeUserRepo
	userID    string
}

func newCustomerFixture(t *testing.T) *customerFixture {
	t.Helper()
	users := newFakeUserRepo()
	customers := newFakeCustomerRepo()
	invoices := newFakeInvoiceRepo()

	userID := uuid.New().String()
	users.seed(&entity.User{ID: userID, Email: "ana@example.com", EntityStatus: entity.EntityStatusActive})

	uc := NewCustomerUseCase(customers, invoices, users, &fakeAudit{})
	return &customerFixture{uc: uc, customers: customers, invoices: invoices, users: users, userID: userID}
}

func TestCustomerCreate_EmailUnicoPorUsuario(t *testing.T) {
	f := newCustomerFixture(t)

	_, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com",
	})
	require.NoError(t, err)

	// El mismo email bajo el mismo usuario es conflicto.
	_, err = f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME bis", Email: "ACME@example.com", // se normaliza a minúsculas
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Bajo otro usuario el mismo email es válido.
	otherUser := uuid.New().String()
	f.users.seed(&entity.User{ID: otherUser, Email: "otro@example.com", EntityStatus: entity.EntityStatusActive})
	_, err = f.uc.Create(context.Background(), otherUser, dto.CreateCustomerRequest{
		Name: "ACME ajeno", Email: "acme@example.com",
	})
	assert.NoError(t, err, "la unicidad de email de clientes es por usuario, no global")
}

func TestCustomerCreate_UsuarioInexistente(t *testing.T) {
	f := newCustomerFixture(t)

	_, err := f.uc.Create(context.Background(), "usuario-fantasma", dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerEdit_Patch(t *testing.T) {
	f := newCustomerFixture(t)
	created, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com", PhoneNumber: "555-1234",
	})
	require.NoError(t, err)

	newName := "ACME S.A."
	edited, err := f.uc.Edit(context.Background(), f.userID, created.ID, dto.EditCustomerRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "ACME S.A.", edited.Name)
	assert.Equal(t, "acme@example.com", edited.Email, "los campos ausentes no cambian")
	assert.Equal(t, "555-1234", edited.PhoneNumber)
}

func TestCustomerEdit_EmailOcupado(t *testing.T) {
	f := newCustomerFixture(t)
	_, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "A", Email: "a@example.com",
	})
	require.NoError(t, err)
	b, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "B", Email: "b@example.com",
	})
	require.NoError(t, err)

	taken := "a@example.com"
	_, err = f.uc.Edit(context.Background(), f.userID, b.ID, dto.EditCustomerRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Reaplicar el propio email no es conflicto.
	own := "b@example.com"
	_, err = f.uc.Edit(context.Background(), f.userID, b.ID, dto.EditCustomerRequest{Email: &own})
	assert.NoError(t, err)
}

func TestCustomerDelete_GuardaDeFacturas(t *testing.T) {
	f := newCustomerFixture(t)
	created, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com",
	})
	require.NoError(t, err)

	// Con una factura (del estado que sea) el borrado viola la regla de negocio.
	require.NoError(t, f.invoices.Create(context.Background(), &entity.Invoice{
		ID: uuid.New().String(), UserID: f.userID, CustomerID: created.ID,
		Status: entity.InvoiceStatusCancelled, EntityStatus: entity.EntityStatusActive,
	}))
	err = f.uc.Delete(context.Background(), f.userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	// Sin facturas el borrado procede.
	require.NoError(t, f.invoices.Delete(context.Background(), firstInvoiceID(f.invoices)))
	assert.NoError(t, f.uc.Delete(context.Background(), f.userID, created.ID))
}

func firstInvoiceID(repo *fakeInvoiceRepo) string {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for id := range repo.invoices {
		return id
	}
	return ""
}

func TestCustomerGet_AjenoNoRevelado(t *testing.T) {
	f := newCustomerFixture(t)
	created, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com",
	})
	require.NoError(t, err)

	otherUser := uuid.New().String()
	f.users.seed(&entity.User{ID: otherUser, Email: "otro@example.com", EntityStatus: entity.EntityStatusActive})

	_, err = f.uc.Get(context.Background(), otherUser, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el cliente de otro usuario se responde como inexistente")
}

func TestCustomerList_FiltroYPaginacion(t *testing.T) {
	f := newCustomerFixture(t)
	names := []string{"Alfa", "Beta", "Gamma", "Alfombra"}
	for i, name := range names {
		_, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
			Name: name, Email: name + string(rune('0'+i)) + "@example.com",
		})
		require.NoError(t, err)
	}

	list, err := f.uc.List(context.Background(), f.userID,
		dto.PageRequest{Page: 1, PageSize: 10},
		dto.ListFilter{SearchInput: "alf", Sorting: "asc"})
	require.NoError(t, err)

	require.Len(t, list.Items, 2, "el filtro es substring case-insensitive sobre el nombre")
	assert.Equal(t, "Alfa", list.Items[0].Name)
	assert.Equal(t, "Alfombra", list.Items[1].Name)
	assert.Equal(t, 1, list.Meta.TotalPages)
}

func TestCustomerArchive(t *testing.T) {
	f := newCustomerFixture(t)
	created, err := f.uc.Create(context.Background(), f.userID, dto.CreateCustomerRequest{
		Name: "ACME", Email: "acme@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Archive(context.Background(), f.userID, created.ID))

	_, err = f.uc.Get(context.Background(), f.userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un cliente archivado no es visible por Get")
}
