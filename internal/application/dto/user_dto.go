package dto

import "time"

// UserResponse usuario en respuestas (nunca expone el hash de contraseña).
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Address      string    `json:"address,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	EntityStatus string    `json:"entity_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateUserRequest body para PUT /api/users/me. Campos nil = sin cambio.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// ChangePasswordRequest body para PUT /api/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
