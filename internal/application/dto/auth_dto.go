package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterCEORequest body para POST /api/auth/register-ceo: crea empresa + usuario CEO.
type RegisterCEORequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

// CreateEmployeeRequest body para POST /api/users (solo CEO o root).
type CreateEmployeeRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// UserResponse representación pública del usuario (sin hash).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id,omitempty"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	IsRoot      bool      `json:"is_root"`
	IsCEO       bool      `json:"is_ceo"`
	CreatedAt   time.Time `json:"created_at"`
}
