package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-shelter-adoption/internal/domain/applications"
	"pet-shelter-adoption/internal/domain/pets"
)

type applicationsRepo struct {
	store *Store
}

func NewApplicationsRepo(store *Store) applications.Repository {
	return &applicationsRepo{store: store}
}

func (r *applicationsRepo) Create(ctx context.Context, a applications.Application) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}

	// Constraint único sobre request_id: colisión => Conflict, nada
	// queda persistido.
	if _, dup := r.store.requestIDs[a.RequestID]; dup {
		return applications.ErrConflict
	}
	if _, exists := r.store.apps[a.ID]; exists {
		return applications.ErrConflict
	}

	r.store.requestIDs[a.RequestID] = struct{}{}
	r.store.apps[a.ID] = a
	return nil
}

func (r *applicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.apps[id]
	if !ok {
		return applications.Application{}, ErrNotFound
	}
	return a, nil
}

func (r *applicationsRepo) UpdateStatus(ctx context.Context, a applications.Application) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.updateStatusLocked(a)
}

// Approve actualiza solicitud y mascota dentro de la misma sección crítica:
// ningún lector ve la solicitud aprobada con la mascota aún AVAILABLE.
func (r *applicationsRepo) Approve(ctx context.Context, a applications.Application) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.updateStatusLocked(a); err != nil {
		return err
	}

	if a.PetID != nil {
		if p, ok := r.store.pets[*a.PetID]; ok {
			p.Status = pets.StatusAdopted
			p.UpdatedAt = a.UpdatedAt
			r.store.pets[*a.PetID] = p
		}
	}
	return nil
}

func (r *applicationsRepo) updateStatusLocked(a applications.Application) error {
	current, ok := r.store.apps[a.ID]
	if !ok {
		return ErrNotFound
	}
	current.Status = a.Status
	current.UpdatedAt = a.UpdatedAt
	r.store.apps[a.ID] = current
	return nil
}

func (r *applicationsRepo) ListByShelter(ctx context.Context, shelterID string) ([]applications.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.store.apps {
		if a.ShelterID == shelterID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) ListByEmail(ctx context.Context, email string) ([]applications.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.store.apps {
		if a.Email == email {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) ListPendingByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.store.apps {
		if a.PetID != nil && *a.PetID == petID && a.Status == applications.StatusPending {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) UnlinkPet(ctx context.Context, petID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, a := range r.store.apps {
		if a.PetID != nil && *a.PetID == petID {
			a.PetID = nil
			r.store.apps[id] = a
		}
	}
	return nil
}

func sortNewestFirst(items []applications.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
