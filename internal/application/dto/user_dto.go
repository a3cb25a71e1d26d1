package dto

import "github.com/jhoicas/storefront/internal/domain/entity"

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y perfil. El cliente la convierte en sesión tal cual.
type LoginResponse struct {
	User  entity.UserProfile `json:"user"`
	Token string             `json:"token"`
}

// UpdateProfileRequest entrada para PUT /auth/profile. Campos vacíos no se modifican.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}
