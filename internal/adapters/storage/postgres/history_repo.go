package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-adoption/internal/domain/pets"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Create inserta el snapshot. pet_id NO lleva foreign key: la fila de
// historial debe seguir siendo válida después de borrar la mascota.
func (r *HistoryRepo) Create(ctx context.Context, e pets.LogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_log_history (
			id, pet_id, shelter_id, name, species, breed,
			age_years, age_months, description, status, image,
			date_added, deleted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		e.ID,
		e.PetID,
		e.ShelterID,
		e.Name,
		e.Species,
		e.Breed,
		e.AgeYears,
		e.AgeMonths,
		e.Description,
		e.Status,
		e.Image,
		e.DateAdded,
		e.DeletedAt,
	)
	return err
}

func (r *HistoryRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, shelter_id, name, species, breed,
			age_years, age_months, description, status, image,
			date_added, deleted_at
		FROM pet_log_history
		WHERE shelter_id = $1
		ORDER BY deleted_at DESC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.LogEntry, 0)
	for rows.Next() {
		var e pets.LogEntry
		var petID sql.NullString
		if err := rows.Scan(
			&e.ID,
			&petID,
			&e.ShelterID,
			&e.Name,
			&e.Species,
			&e.Breed,
			&e.AgeYears,
			&e.AgeMonths,
			&e.Description,
			&e.Status,
			&e.Image,
			&e.DateAdded,
			&e.DeletedAt,
		); err != nil {
			return nil, err
		}
		if petID.Valid {
			v := petID.String
			e.PetID = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
