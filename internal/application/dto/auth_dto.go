package dto

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthTokenResponse token emitido tras registro o login.
type AuthTokenResponse struct {
	AccessToken string `json:"access_token"`
}
