package profiles

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)

	// UnlinkShelter pone en nil la afiliación de todo el staff del refugio
	// (semántica set-null al eliminar un Shelter).
	UnlinkShelter(ctx context.Context, shelterID string) error
}
