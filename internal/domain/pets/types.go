package pets

import "strings"

// Species define las especies soportadas.
// @Enum DOG, CAT, BIRD, OTHER
type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesBird  Species = "BIRD"
	SpeciesOther Species = "OTHER"
)

func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToUpper(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	case SpeciesBird:
		return SpeciesBird, true
	case SpeciesOther:
		return SpeciesOther, true
	default:
		return "", false
	}
}

// Gender define el sexo de la mascota.
// @Enum MALE, FEMALE, UNKNOWN
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

func ParseGender(s string) (Gender, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return GenderUnknown, true
	}
	switch Gender(v) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	case GenderUnknown:
		return GenderUnknown, true
	default:
		return "", false
	}
}

// Status es el estado de adopción de la mascota. Lo mueve la máquina de
// estados de solicitudes (aprobación => ADOPTED) o una edición manual
// del staff.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusAdopted   Status = "ADOPTED"
	StatusPending   Status = "PENDING"
)

func ParseStatus(s string) (Status, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return StatusAvailable, true
	}
	switch Status(v) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusAdopted:
		return StatusAdopted, true
	case StatusPending:
		return StatusPending, true
	default:
		return "", false
	}
}
