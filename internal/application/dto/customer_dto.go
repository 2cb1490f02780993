package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	CreditCard  string `json:"credit_card"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// EditCustomerRequest body para PUT /api/customers/:id. Campos nil = sin cambio.
type EditCustomerRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	CreditCard  *string `json:"credit_card"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	EntityStatus string    `json:"entity_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
