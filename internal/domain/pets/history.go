package pets

import (
	"context"
	"time"
)

// LogEntry es el snapshot inmutable que se escribe justo antes de borrar
// una mascota. Append-only: nunca se muta ni se borra, y su existencia no
// depende de que la mascota siga existiendo (PetID queda nil-able).
type LogEntry struct {
	ID string

	// PetID referencia a la mascota ya borrada; se conserva solo como
	// dato histórico.
	PetID *string

	ShelterID string

	Name      string
	Species   Species
	Breed     string
	AgeYears  int
	AgeMonths int

	Description string
	Status      Status
	Image       string

	DateAdded time.Time
	DeletedAt time.Time
}

type HistoryRepository interface {
	Create(ctx context.Context, e LogEntry) error
	ListByShelter(ctx context.Context, shelterID string) ([]LogEntry, error)
}
