package usecase

// Fakes en memoria de los puertos de persistencia. Simulan el comportamiento
// observable del almacén real: devuelven copias (no aliases) y aplican
// last-write-wins, de modo que las carreras de read-modify-write se reproducen
// igual que contra la base de datos.

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoices-api/internal/domain"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

/* Usuarios */

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.EntityStatus != entity.EntityStatusActive {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return ok && u.EntityStatus == entity.EntityStatusActive, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) seed(user *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
}

/* Clientes */

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.UserID == customer.UserID && c.Email == customer.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, userID, customerID string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[customerID]
	if !ok || c.UserID != userID || c.EntityStatus != entity.EntityStatusActive {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) GetByIDAnyStatus(_ context.Context, userID, customerID string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[customerID]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, userID, email string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.UserID == userID && c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) ListByUser(_ context.Context, userID string, q repository.ListQuery) ([]*entity.Customer, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Customer
	for _, c := range f.customers {
		if c.UserID != userID || c.EntityStatus != entity.EntityStatusActive {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Search)) {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.Sort == repository.SortDescending {
			return matched[i].Name > matched[j].Name
		}
		return matched[i].Name < matched[j].Name
	})
	total := len(matched)
	return paginate(matched, q), total, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) ExistsByID(_ context.Context, userID, customerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[customerID]
	return ok && c.UserID == userID && c.EntityStatus == entity.EntityStatusActive, nil
}

func (f *fakeCustomerRepo) seed(customer *entity.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *customer
	f.customers[customer.ID] = &cp
}

/* Facturas */

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

func copyInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Rows = append([]entity.InvoiceRow(nil), inv.Rows...)
	return &cp
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, userID, invoiceID string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	if !ok || inv.UserID != userID || inv.EntityStatus != entity.EntityStatusActive {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (f *fakeInvoiceRepo) GetByIDAnyStatus(_ context.Context, userID, invoiceID string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (f *fakeInvoiceRepo) ListByUser(_ context.Context, userID string, q repository.ListQuery) ([]*entity.Invoice, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.UserID != userID || inv.EntityStatus != entity.EntityStatusActive {
			continue
		}
		if q.Search != "" && !anyRowService(inv, q.Search) {
			continue
		}
		matched = append(matched, copyInvoice(inv))
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.Sort == repository.SortDescending {
			return matched[i].TotalSum.GreaterThan(matched[j].TotalSum)
		}
		return matched[i].TotalSum.LessThan(matched[j].TotalSum)
	})
	total := len(matched)
	return paginate(matched, q), total, nil
}

func anyRowService(inv *entity.Invoice, search string) bool {
	for _, r := range inv.Rows {
		if strings.Contains(strings.ToLower(r.Service), strings.ToLower(search)) {
			return true
		}
	}
	return false
}

func (f *fakeInvoiceRepo) UpdateHeader(_ context.Context, inv *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.TotalSum = inv.TotalSum
	stored.Discount = inv.Discount
	stored.Comment = inv.Comment
	stored.Status = inv.Status
	stored.EntityStatus = inv.EntityStatus
	stored.StartDate = inv.StartDate
	stored.EndDate = inv.EndDate
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (f *fakeInvoiceRepo) InsertRows(_ context.Context, rows []entity.InvoiceRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		inv, ok := f.invoices[row.InvoiceID]
		if !ok {
			return domain.ErrNotFound
		}
		inv.Rows = append(inv.Rows, row)
	}
	return nil
}

func (f *fakeInvoiceRepo) DeleteRow(_ context.Context, invoiceID, rowID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, row := range inv.Rows {
		if row.ID == rowID {
			inv.Rows = append(inv.Rows[:i], inv.Rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeInvoiceRepo) CountByCustomer(_ context.Context, customerID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeInvoiceRepo) ExistsByID(_ context.Context, userID, invoiceID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	return ok && inv.UserID == userID && inv.EntityStatus == entity.EntityStatusActive, nil
}

func (f *fakeInvoiceRepo) stored(id string) *entity.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil
	}
	return copyInvoice(inv)
}

/* Transacciones */

// fakeTxRunner entrega el mismo repositorio: la atomicidad real la prueba la
// implementación de infraestructura, aquí solo importa que ambas escrituras
// ocurran.
type fakeTxRunner struct {
	invoices *fakeInvoiceRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	return fn(f.invoices)
}

/* Reportes */

type fakeReportRepo struct {
	customers int
	stats     map[entity.InvoiceStatus]repository.InvoiceStats
	all       repository.InvoiceStats
	calls     int
}

func (f *fakeReportRepo) CountCustomers(_ context.Context, _ string) (int, error) {
	f.calls++
	return f.customers, nil
}

func (f *fakeReportRepo) AggregateInvoices(_ context.Context, _ string, _, _ *time.Time, status *entity.InvoiceStatus) (repository.InvoiceStats, error) {
	f.calls++
	if status == nil {
		return f.all, nil
	}
	return f.stats[*status], nil
}

/* Auditoría */

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) record(action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeAudit) LogUserAction(_, action string)        { f.record(action) }
func (f *fakeAudit) LogCustomerAction(_, _, action string) { f.record(action) }
func (f *fakeAudit) LogInvoiceAction(_, _, action string)  { f.record(action) }
func (f *fakeAudit) LogReportAction(_, report string)      { f.record(report) }

func (f *fakeAudit) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.actions) == 0 {
		return ""
	}
	return f.actions[len(f.actions)-1]
}

/* Helpers */

func paginate[T any](items []T, q repository.ListQuery) []T {
	start := q.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + q.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
