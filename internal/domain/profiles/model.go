package profiles

import (
	"time"

	"pet-shelter-adoption/internal/domain/authz"
)

// Profile envuelve una identidad de autenticación con su rol de negocio.
// Se crea exactamente una vez por identidad al registrarse; el rol es
// inmutable después de la creación.
type Profile struct {
	ID     string
	UserID string

	Name string
	Role authz.Role

	// ShelterID: afiliación opcional para staff. Nil = sin refugio
	// (válido pero degradado). Se pone en nil si el refugio se elimina.
	ShelterID *string

	CreatedAt time.Time
}
