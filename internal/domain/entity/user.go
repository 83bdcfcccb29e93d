package entity

import "time"

// Roles de usuario de la API.
const (
	RoleAdmin    = "admin"
	RoleContador = "contador"
	RoleConsulta = "consulta"
)

// User representa un usuario de la API (capa de acceso).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
