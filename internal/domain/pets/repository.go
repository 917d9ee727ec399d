package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Delete(ctx context.Context, id string) error

	ListByShelter(ctx context.Context, shelterID string) ([]Pet, error)

	// ListAvailable devuelve mascotas AVAILABLE; search (opcional) filtra
	// por nombre, especie o raza, case-insensitive.
	ListAvailable(ctx context.Context, search string) ([]Pet, error)
}
