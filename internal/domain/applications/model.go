package applications

import "time"

// Application es la solicitud de adopción. El snapshot de la mascota
// (PetName/PetImage/ShelterID) se copia al crearla para que mutaciones o
// borrados posteriores de la mascota no alteren el dato histórico.
type Application struct {
	ID string

	// RequestID es el identificador legible REQ-<YYYYMMDDHHMMSS>.
	// Único global, se asigna una sola vez y nunca cambia.
	RequestID string

	// PetID queda en nil si la mascota se borra; la solicitud sobrevive
	// como registro histórico (mismo patrón que PetLogHistory).
	PetID *string

	// ApplicantUserID es la identidad autenticada capturada al crear la
	// solicitud. Puede estar vacío en filas históricas.
	ApplicantUserID string

	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	Province   string

	Reason string

	// Snapshot denormalizado de la mascota al momento de aplicar.
	PetName   string
	PetImage  string
	ShelterID string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
