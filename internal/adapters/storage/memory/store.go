package memory

import (
	"errors"
	"sync"

	"pet-shelter-adoption/internal/domain/applications"
	"pet-shelter-adoption/internal/domain/pets"
	"pet-shelter-adoption/internal/domain/profiles"
	"pet-shelter-adoption/internal/domain/shelters"
)

var ErrNotFound = errors.New("not found")

// Store es el estado compartido de todos los repos in-memory. Compartir el
// mutex es lo que le da atomicidad al approve (solicitud + mascota en una
// sola sección crítica), igual que la transacción en Postgres.
type Store struct {
	mu sync.RWMutex

	shelters map[string]shelters.Shelter
	pets     map[string]pets.Pet
	profiles map[string]profiles.Profile
	apps     map[string]applications.Application
	history  []pets.LogEntry

	// requestIDs respalda el constraint único sobre request_id.
	requestIDs map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		shelters:   make(map[string]shelters.Shelter),
		pets:       make(map[string]pets.Pet),
		profiles:   make(map[string]profiles.Profile),
		apps:       make(map[string]applications.Application),
		requestIDs: make(map[string]struct{}),
	}
}
