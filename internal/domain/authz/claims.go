package authz

import "pet-shelter-adoption/internal/ports/auth"

// FromClaims arma el Principal a partir de los claims del proveedor de
// sesión. Un rol no reconocido queda vacío y la política lo niega todo.
func FromClaims(c auth.Claims) Principal {
	role, _ := ParseRole(c.Role)
	return Principal{
		UserID:    c.UserID,
		Email:     c.Email,
		Name:      c.Name,
		Role:      role,
		ShelterID: c.ShelterID,
	}
}
