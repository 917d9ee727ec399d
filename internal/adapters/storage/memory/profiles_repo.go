package memory

import (
	"context"
	"errors"
	"strings"

	"pet-shelter-adoption/internal/domain/profiles"
)

type profilesRepo struct {
	store *Store
}

func NewProfilesRepo(store *Store) profiles.Repository {
	return &profilesRepo{store: store}
}

func (r *profilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	for _, existing := range r.store.profiles {
		if existing.UserID == p.UserID {
			return profiles.ErrConflict
		}
	}
	r.store.profiles[p.ID] = p
	return nil
}

func (r *profilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.profiles[p.ID]; !ok {
		return ErrNotFound
	}
	r.store.profiles[p.ID] = p
	return nil
}

func (r *profilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.profiles[id]
	if !ok {
		return profiles.Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *profilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profiles.Profile{}, ErrNotFound
}

func (r *profilesRepo) UnlinkShelter(ctx context.Context, shelterID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, p := range r.store.profiles {
		if p.ShelterID != nil && *p.ShelterID == shelterID {
			p.ShelterID = nil
			r.store.profiles[id] = p
		}
	}
	return nil
}
