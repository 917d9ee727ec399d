package postgres

import (
	"context"
	"database/sql"

	"pet-shelter-adoption/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, request_id, pet_id, applicant_user_id,
	first_name, middle_name, last_name, email, phone,
	address, city, province, reason,
	pet_name, pet_image, shelter_id,
	status, created_at, updated_at
`

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		a.ID,
		a.RequestID,
		a.PetID,
		a.ApplicantUserID,
		a.FirstName,
		a.MiddleName,
		a.LastName,
		a.Email,
		a.Phone,
		a.Address,
		a.City,
		a.Province,
		a.Reason,
		a.PetName,
		a.PetImage,
		a.ShelterID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	// request_id lleva constraint único: dos creaciones en el mismo
	// segundo chocan acá y salen como Conflict, sin persistir nada.
	if isUniqueViolation(err) {
		return applications.ErrConflict
	}
	return err
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE id = $1
	`, id)

	a, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return applications.Application{}, ErrNotFound
	}
	return a, err
}

func (r *ApplicationsRepo) UpdateStatus(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, a.ID, a.Status, a.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve escribe el status de la solicitud y el flip de la mascota a
// ADOPTED en una sola transacción: un crash en el medio no puede dejar
// solicitud y mascota inconsistentes.
func (r *ApplicationsRepo) Approve(ctx context.Context, a applications.Application) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE adoption_applications
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, a.ID, a.Status, a.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if a.PetID != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE pets
			SET status = 'ADOPTED', updated_at = $2
			WHERE id = $1
		`, *a.PetID, a.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ApplicationsRepo) ListByShelter(ctx context.Context, shelterID string) ([]applications.Application, error) {
	return r.list(ctx, `WHERE shelter_id = $1`, shelterID)
}

func (r *ApplicationsRepo) ListByEmail(ctx context.Context, email string) ([]applications.Application, error) {
	return r.list(ctx, `WHERE email = $1`, email)
}

func (r *ApplicationsRepo) ListPendingByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	return r.list(ctx, `WHERE pet_id = $1 AND status = 'PENDING'`, petID)
}

func (r *ApplicationsRepo) list(ctx context.Context, where, arg string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
	`+where+`
		ORDER BY created_at DESC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ApplicationsRepo) UnlinkPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET pet_id = NULL
		WHERE pet_id = $1
	`, petID)
	return err
}

func scanApplication(scan func(dest ...any) error) (applications.Application, error) {
	var a applications.Application
	var petID sql.NullString
	err := scan(
		&a.ID,
		&a.RequestID,
		&petID,
		&a.ApplicantUserID,
		&a.FirstName,
		&a.MiddleName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.City,
		&a.Province,
		&a.Reason,
		&a.PetName,
		&a.PetImage,
		&a.ShelterID,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return applications.Application{}, err
	}
	if petID.Valid {
		v := petID.String
		a.PetID = &v
	}
	return a, nil
}
