package memory

import (
	"context"
	"sort"

	"pet-shelter-adoption/internal/domain/pets"
)

type historyRepo struct {
	store *Store
}

func NewHistoryRepo(store *Store) pets.HistoryRepository {
	return &historyRepo{store: store}
}

// Create agrega el snapshot. Append-only: no hay update ni delete.
func (r *historyRepo) Create(ctx context.Context, e pets.LogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.history = append(r.store.history, e)
	return nil
}

func (r *historyRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.LogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]pets.LogEntry, 0)
	for _, e := range r.store.history {
		if e.ShelterID == shelterID {
			out = append(out, e)
		}
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeletedAt.After(out[j].DeletedAt)
	})
	return out, nil
}
