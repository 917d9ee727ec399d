package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-shelter-adoption/internal/domain/shelters"
)

type sheltersRepo struct {
	store *Store
}

func NewSheltersRepo(store *Store) shelters.Repository {
	return &sheltersRepo{store: store}
}

func (r *sheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("shelter id required")
	}
	if _, exists := r.store.shelters[s.ID]; exists {
		return errors.New("shelter already exists")
	}
	r.store.shelters[s.ID] = s
	return nil
}

func (r *sheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.shelters[id]
	if !ok {
		return shelters.Shelter{}, ErrNotFound
	}
	return s, nil
}

func (r *sheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]shelters.Shelter, 0, len(r.store.shelters))
	for _, s := range r.store.shelters {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateRegistered.Before(out[j].DateRegistered)
	})
	return out, nil
}

func (r *sheltersRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shelters[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.shelters, id)
	return nil
}
