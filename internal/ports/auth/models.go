package auth

// Claims representa la identidad autenticada que entrega el proveedor de
// sesión. El core nunca valida credenciales; solo consume estos datos.
type Claims struct {
	UserID string
	Email  string
	Name   string

	// Role: ADOPTER, SHELTER o ADMIN (ver internal/domain/authz).
	Role string

	// ShelterID es opcional: staff sin refugio asignado es un estado
	// válido pero degradado (las operaciones de dashboard se niegan).
	ShelterID string
}
