package applications

import "context"

type Repository interface {
	// Create persiste la solicitud. Colisión de request_id (constraint
	// único) => ErrConflict, sin persistir nada.
	Create(ctx context.Context, a Application) error

	GetByID(ctx context.Context, id string) (Application, error)
	UpdateStatus(ctx context.Context, a Application) error

	// Approve aplica en una sola unidad atómica el status de la solicitud
	// y el flip de la mascota a ADOPTED (si la solicitud aún referencia
	// una mascota). Un lector concurrente nunca ve un estado intermedio.
	Approve(ctx context.Context, a Application) error

	// ListByShelter: solicitudes de mascotas del refugio, más reciente
	// primero.
	ListByShelter(ctx context.Context, shelterID string) ([]Application, error)

	// ListByEmail: match exacto de email, más reciente primero.
	ListByEmail(ctx context.Context, email string) ([]Application, error)

	ListPendingByPet(ctx context.Context, petID string) ([]Application, error)

	// UnlinkPet pone pet_id en nil en todas las solicitudes de la mascota
	// (las solicitudes sobreviven al borrado de la mascota).
	UnlinkPet(ctx context.Context, petID string) error
}
