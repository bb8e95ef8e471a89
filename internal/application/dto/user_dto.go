package dto

import "time"

// RegisterRequest entrada para registro (auth): email, password, location_id.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	LocationID string `json:"location_id" validate:"required,uuid"`
	Name       string `json:"name" validate:"omitempty,max=200"`
	Role       string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
