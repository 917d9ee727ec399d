package applications

import "strings"

// Status es el estado del ciclo de vida de una solicitud de adopción.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// transitions es la tabla cerrada de la máquina de estados.
// PENDING es el único estado inicial; APPROVED/REJECTED/COMPLETED son
// terminales salvo APPROVED -> COMPLETED.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

// CanTransition reporta si el cambio from -> to está permitido.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
