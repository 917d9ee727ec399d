package pets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pet representa un animal publicado en adopción.
type Pet struct {
	ID        string
	ShelterID string // exactamente un refugio dueño

	Name    string
	Species Species
	Breed   string
	Gender  Gender

	AgeYears  int
	AgeMonths int

	HealthStatus string
	Description  string

	Status Status

	// AdoptionFee es decimal fijo a 2 decimales.
	AdoptionFee decimal.Decimal

	// Image es una referencia opaca (path/URL), se pasa sin tocar.
	Image string

	DateAdded time.Time
	UpdatedAt time.Time
}
