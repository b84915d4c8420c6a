package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User usuario de la consola del almacén.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string // nombre visible (aparece en movimientos y actas)
	Role         string // RoleAdmin | RoleUser
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
