package authz

import "strings"

// Role define los roles reconocidos por la política de autorización.
type Role string

const (
	RoleAdopter Role = "ADOPTER"
	RoleShelter Role = "SHELTER"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdopter:
		return RoleAdopter, true
	case RoleShelter:
		return RoleShelter, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Principal es el contexto de decisión: identidad + rol + afiliación.
// Se pasa explícito a cada operación; no hay estado de sesión ambiente.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   Role

	// ShelterID: refugio afiliado para staff. Vacío = staff sin refugio
	// (estado degradado válido: se niega todo lo scoped a un refugio).
	ShelterID string
}

// Anonymous reporta si el principal no está autenticado.
func (p Principal) Anonymous() bool {
	return strings.TrimSpace(p.UserID) == ""
}

// IsStaffOf reporta si el principal es staff del refugio dado.
func (p Principal) IsStaffOf(shelterID string) bool {
	if p.Anonymous() || p.Role != RoleShelter {
		return false
	}
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" || p.ShelterID == "" {
		return false
	}
	return p.ShelterID == shelterID
}

// CanManageShelterPets decide si el principal puede gestionar mascotas y
// solicitudes del refugio dado (vistas de dashboard). Solo staff afiliado
// a ese mismo refugio.
func CanManageShelterPets(p Principal, shelterID string) bool {
	return p.IsStaffOf(shelterID)
}

// CanViewApplication decide si el principal puede ver el detalle de una
// solicitud: staff del refugio dueño, o el solicitante original.
//
// La identificación del solicitante usa el user ID capturado al crear la
// solicitud. Para filas anteriores a ese campo queda el fallback histórico:
// email igual, o display name igual al first name guardado.
func CanViewApplication(p Principal, app ApplicationRef) bool {
	if p.Anonymous() {
		return false
	}
	if p.IsStaffOf(app.ShelterID) {
		return true
	}
	if app.ApplicantUserID != "" {
		return p.UserID == app.ApplicantUserID
	}
	if p.Email != "" && p.Email == app.Email {
		return true
	}
	return p.Name != "" && p.Name == app.FirstName
}

// ApplicationRef son los campos de una solicitud que la política necesita
// para decidir, sin importar el paquete applications.
type ApplicationRef struct {
	ApplicantUserID string
	Email           string
	FirstName       string
	ShelterID       string
}

// CanAdministrate decide si el principal puede ejecutar operaciones
// administrativas (crear/eliminar refugios, asignar staff).
func CanAdministrate(p Principal) bool {
	return !p.Anonymous() && p.Role == RoleAdmin
}
