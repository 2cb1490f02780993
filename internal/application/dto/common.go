package dto

// PageRequest paginación 1-indexada para listados.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// DefaultPage aplica valores por defecto si Page/PageSize no vienen en la request.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
}

// PageMeta metadatos de página en respuestas.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta calcula TotalPages = ceil(totalCount / pageSize).
func NewPageMeta(page, pageSize, totalCount int) PageMeta {
	return PageMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (totalCount + pageSize - 1) / pageSize,
	}
}

// PaginatedList listado paginado con sus metadatos.
type PaginatedList[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// ListFilter filtros de listado: búsqueda por substring y orden asc/desc.
type ListFilter struct {
	SearchInput string `query:"searchInput"`
	Sorting     string `query:"sorting"` // asc | desc
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
