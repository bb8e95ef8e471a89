package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero" // personal del depósito
	RoleVendedor  = "vendedor"  // personal de sucursal
)

// User representa un usuario del sistema. Pertenece a un Location: esa
// pertenencia es la identidad de local que viaja en el JWT y que el
// subsistema de traslados recibe como argumento explícito.
type User struct {
	ID           string
	LocationID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
