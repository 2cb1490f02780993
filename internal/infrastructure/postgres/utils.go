package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/invoices-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// sortDirection traduce el enum de orden a SQL. Solo se interpolan las dos
// constantes conocidas, nunca entrada del cliente.
func sortDirection(s repository.SortOrder) string {
	if s == repository.SortDescending {
		return "DESC"
	}
	return "ASC"
}
