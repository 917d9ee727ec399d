package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-shelter-adoption/internal/domain/pets"
)

type petsRepo struct {
	store *Store
}

func NewPetsRepo(store *Store) pets.Repository {
	return &petsRepo{store: store}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.store.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.store.pets[p.ID] = p
	return nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.pets[p.ID]; !exists {
		return ErrNotFound
	}
	r.store.pets[p.ID] = p
	return nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.pets[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.pets[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.pets, id)
	return nil
}

func (r *petsRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.store.pets {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}

	// Orden estable por fecha de alta (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateAdded.Before(out[j].DateAdded)
	})
	return out, nil
}

func (r *petsRepo) ListAvailable(ctx context.Context, search string) ([]pets.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]pets.Pet, 0)
	for _, p := range r.store.pets {
		if p.Status != pets.StatusAvailable {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateAdded.Before(out[j].DateAdded)
	})
	return out, nil
}

func matches(p pets.Pet, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(string(p.Species)), search) ||
		strings.Contains(strings.ToLower(p.Breed), search)
}
