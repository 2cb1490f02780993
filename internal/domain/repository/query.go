package repository

// SortOrder dirección de ordenamiento de un listado.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ListQuery parámetros tipados de filtrado, orden y paginación para listados.
// Page es 1-indexado. Search es un substring (case-insensitive) sobre el campo
// de búsqueda propio de cada agregado: Customer.Name para clientes y la
// descripción de servicio de las líneas para facturas. Los empates de orden se
// resuelven por orden de inserción del almacén.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Sort     SortOrder
}

// Offset devuelve el desplazamiento SQL correspondiente a la página.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
