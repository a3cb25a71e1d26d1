package entity

import "time"

// Roles válidos para User. El rol viaja como entero pequeño en el token y en la sesión.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User representa una cuenta registrada en la tienda (lado backend).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	Address      string
	Role         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile devuelve la vista pública del usuario que viaja al cliente.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}

// UserProfile es el payload de identidad que guarda la sesión del cliente.
// La capa de sesión lo trata como opaco; solo Role se interpreta (gate de administrador).
type UserProfile struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

// IsAdmin indica si el perfil trae el claim de administrador.
func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
