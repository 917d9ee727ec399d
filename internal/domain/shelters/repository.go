package shelters

import "context"

type Repository interface {
	Create(ctx context.Context, s Shelter) error
	GetByID(ctx context.Context, id string) (Shelter, error)
	List(ctx context.Context) ([]Shelter, error)
	Delete(ctx context.Context, id string) error
}
