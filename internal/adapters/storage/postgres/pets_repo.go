package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-shelter-adoption/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, shelter_id, name, species, breed, gender,
	age_years, age_months, health_status, description,
	status, adoption_fee, image, date_added, updated_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.ShelterID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.AgeYears,
		p.AgeMonths,
		p.HealthStatus,
		p.Description,
		p.Status,
		p.AdoptionFee,
		p.Image,
		p.DateAdded,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			gender = $5,
			age_years = $6,
			age_months = $7,
			health_status = $8,
			description = $9,
			status = $10,
			adoption_fee = $11,
			image = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.AgeYears,
		p.AgeMonths,
		p.HealthStatus,
		p.Description,
		p.Status,
		p.AdoptionFee,
		p.Image,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row.Scan)
	if err == sql.ErrNoRows {
		return pets.Pet{}, ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE shelter_id = $1
		ORDER BY date_added ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPets(rows)
}

func (r *PetsRepo) ListAvailable(ctx context.Context, search string) ([]pets.Pet, error) {
	query := `
		SELECT ` + petColumns + `
		FROM pets
		WHERE status = 'AVAILABLE'
	`
	args := []any{}

	if search != "" {
		query += ` AND (name ILIKE $1 OR species ILIKE $1 OR breed ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY date_added ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPets(rows)
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	err := scan(
		&p.ID,
		&p.ShelterID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Gender,
		&p.AgeYears,
		&p.AgeMonths,
		&p.HealthStatus,
		&p.Description,
		&p.Status,
		&p.AdoptionFee,
		&p.Image,
		&p.DateAdded,
		&p.UpdatedAt,
	)
	return p, err
}
