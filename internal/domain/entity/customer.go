package entity

import "time"

// Customer representa un cliente facturable. Pertenece a exactamente un usuario;
// el email es único entre los clientes de ese usuario (no global).
type Customer struct {
	ID           string
	UserID       string
	Name         string
	Address      string
	CreditCard   string
	Email        string
	PhoneNumber  string
	EntityStatus EntityStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
