package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-adoption/internal/domain/shelters"
)

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterColumns = `
	id, name, address, city, province, postal_code,
	phone_number, email, social_media_page, description, logo,
	date_registered
`

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelters (`+shelterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		s.ID,
		s.Name,
		s.Address,
		s.City,
		s.Province,
		s.PostalCode,
		s.PhoneNumber,
		s.Email,
		s.SocialMediaPage,
		s.Description,
		s.Logo,
		s.DateRegistered,
	)
	return err
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		WHERE id = $1
	`, id)

	s, err := scanShelter(row.Scan)
	if err == sql.ErrNoRows {
		return shelters.Shelter{}, ErrNotFound
	}
	return s, err
}

func (r *SheltersRepo) List(ctx context.Context) ([]shelters.Shelter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		ORDER BY date_registered ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		s, err := scanShelter(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SheltersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shelters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShelter(scan func(dest ...any) error) (shelters.Shelter, error) {
	var s shelters.Shelter
	err := scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.City,
		&s.Province,
		&s.PostalCode,
		&s.PhoneNumber,
		&s.Email,
		&s.SocialMediaPage,
		&s.Description,
		&s.Logo,
		&s.DateRegistered,
	)
	return s, err
}
