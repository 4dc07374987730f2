package entity

import "time"

// Roles del sistema. ADMIN pasa todos los controles de rol.
const (
	RoleAdmin     = "ADMIN"
	RolePlanta    = "PLANTA"    // Gerente de Planta: catálogo, proyecciones, alertas
	RoleCultivo   = "CULTIVO"   // Coordinador de Cultivo: ingreso de biomasa y secado
	RoleComercial = "COMERCIAL" // Ejecutivo Comercial: pedidos
	RoleAuditor   = "AUDITOR"   // solo lectura
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// ValidRole indica si role es uno de los roles del sistema.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePlanta, RoleCultivo, RoleComercial, RoleAuditor:
		return true
	}
	return false
}

// User operador del sistema. Los pedidos guardan su ID como solicitante.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // UserActive | UserInactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si el usuario puede iniciar sesión.
func (u *User) Active() bool { return u.Status == UserActive }
