package usecase

import (
	"github.com/jhoicas/invoices-api/internal/application/dto"
	"github.com/jhoicas/invoices-api/internal/domain/entity"
	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// Conversión entidad → DTO. Los montos se redondean aquí a dos decimales
// (mitad alejándose de cero); las entidades conservan precisión completa.

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Address:      u.Address,
		PhoneNumber:  u.PhoneNumber,
		EntityStatus: string(u.EntityStatus),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		EntityStatus: string(c.EntityStatus),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	rows := make([]dto.InvoiceRowResponse, 0, len(inv.Rows))
	for _, r := range inv.Rows {
		rows = append(rows, dto.InvoiceRowResponse{
			ID:       r.ID,
			Service:  r.Service,
			Quantity: r.Quantity,
			Amount:   r.Amount,
			Sum:      r.Sum.Round(2),
		})
	}
	return &dto.InvoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		TotalSum:     inv.TotalSum.Round(2),
		Discount:     inv.Discount,
		Comment:      inv.Comment,
		Status:       string(inv.Status),
		EntityStatus: string(inv.EntityStatus),
		StartDate:    inv.StartDate,
		EndDate:      inv.EndDate,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
		Rows:         rows,
	}
}

// toListQuery traduce los parámetros HTTP a la consulta tipada del repositorio.
func toListQuery(page dto.PageRequest, filter dto.ListFilter) repository.ListQuery {
	sort := repository.SortAscending
	if filter.Sorting == string(repository.SortDescending) {
		sort = repository.SortDescending
	}
	return repository.ListQuery{
		Page:     page.Page,
		PageSize: page.PageSize,
		Search:   filter.SearchInput,
		Sort:     sort,
	}
}
