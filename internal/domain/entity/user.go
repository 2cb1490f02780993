package entity

import "time"

// EntityStatus ciclo de vida blando aplicado de forma uniforme a User, Customer e Invoice.
// Es independiente del estado de negocio de la factura.
type EntityStatus string

const (
	EntityStatusActive   EntityStatus = "active"
	EntityStatusArchived EntityStatus = "archived"
	EntityStatusDeleted  EntityStatus = "deleted"
)

// User representa un usuario del sistema. Es el dueño de sus clientes y facturas:
// toda operación de la API se resuelve dentro del ámbito de un usuario.
type User struct {
	ID           string
	Name         string
	Email        string // único global, siempre en minúsculas
	PasswordHash string
	Address      string
	PhoneNumber  string
	EntityStatus EntityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
