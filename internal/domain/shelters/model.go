package shelters

import "time"

// Shelter es la organización que publica mascotas y recibe solicitudes.
type Shelter struct {
	ID string

	Name            string
	Address         string
	City            string
	Province        string
	PostalCode      string
	PhoneNumber     string
	Email           string
	SocialMediaPage string
	Description     string

	// Logo es una referencia opaca (path/URL); el procesamiento de imagen
	// queda fuera del core.
	Logo string

	DateRegistered time.Time
}
