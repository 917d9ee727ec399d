package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-adoption/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, name, role, shelter_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Role,
		p.ShelterID,
		p.CreatedAt,
	)
	// user_id tiene constraint único: un perfil por identidad.
	if isUniqueViolation(err) {
		return profiles.ErrConflict
	}
	return err
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET name = $2, shelter_id = $3
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.ShelterID,
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

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *ProfilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *ProfilesRepo) get(ctx context.Context, where, arg string) (profiles.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, role, shelter_id, created_at
		FROM user_profiles
	`+where, arg)

	var p profiles.Profile
	var shelterID sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Role, &shelterID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return profiles.Profile{}, ErrNotFound
	}
	if err != nil {
		return profiles.Profile{}, err
	}
	if shelterID.Valid {
		v := shelterID.String
		p.ShelterID = &v
	}
	return p, nil
}

func (r *ProfilesRepo) UnlinkShelter(ctx context.Context, shelterID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET shelter_id = NULL
		WHERE shelter_id = $1
	`, shelterID)
	return err
}
