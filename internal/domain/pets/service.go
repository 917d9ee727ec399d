package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pet-shelter-adoption/internal/domain/authz"
	"pet-shelter-adoption/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// ApplicationUnlinker pone en nil la referencia a la mascota en sus
// solicitudes antes de borrarla (las solicitudes sobreviven al borrado).
// Interfaz local para no acoplar pets -> applications.
type ApplicationUnlinker interface {
	UnlinkPet(ctx context.Context, petID string) error
}

type Service struct {
	repo    Repository
	history HistoryRepository
	apps    ApplicationUnlinker
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, history HistoryRepository, apps ApplicationUnlinker, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{
		repo:    repo,
		history: history,
		apps:    apps,
		log:     log,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name         string
	Species      string
	Breed        string
	Gender       string
	AgeYears     int
	AgeMonths    int
	HealthStatus string
	Description  string
	Status       string
	AdoptionFee  string
	Image        string
}

// Create publica una mascota en el refugio del actor. El refugio lo asigna
// siempre el servidor desde la afiliación del staff, nunca el request.
func (s *Service) Create(ctx context.Context, actor authz.Principal, in CreateInput) (Pet, error) {
	if actor.Role != authz.RoleShelter || strings.TrimSpace(actor.ShelterID) == "" {
		return Pet{}, ErrForbidden
	}

	p, err := s.buildPet(actor.ShelterID, in)
	if err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) buildPet(shelterID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	gender, ok := ParseGender(in.Gender)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeYears < 0 || in.AgeMonths < 0 {
		return Pet{}, ErrInvalidInput
	}

	fee := decimal.Zero
	if strings.TrimSpace(in.AdoptionFee) != "" {
		var err error
		fee, err = decimal.NewFromString(strings.TrimSpace(in.AdoptionFee))
		if err != nil || fee.IsNegative() {
			return Pet{}, ErrInvalidInput
		}
	}

	now := s.now()
	return Pet{
		ID:           uuid.NewString(),
		ShelterID:    shelterID,
		Name:         strings.TrimSpace(in.Name),
		Species:      species,
		Breed:        strings.TrimSpace(in.Breed),
		Gender:       gender,
		AgeYears:     in.AgeYears,
		AgeMonths:    in.AgeMonths,
		HealthStatus: strings.TrimSpace(in.HealthStatus),
		Description:  strings.TrimSpace(in.Description),
		Status:       status,
		AdoptionFee:  fee.Round(2),
		Image:        strings.TrimSpace(in.Image),
		DateAdded:    now,
		UpdatedAt:    now,
	}, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Species      *string
	Breed        *string
	Gender       *string
	AgeYears     *int
	AgeMonths    *int
	HealthStatus *string
	Description  *string
	Status       *string
	AdoptionFee  *string
	Image        *string
}

// Update edita una mascota. Solo staff del refugio dueño; el refugio no es
// editable desde el dashboard.
func (s *Service) Update(ctx context.Context, actor authz.Principal, petID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if !authz.CanManageShelterPets(actor, p.ShelterID) {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		v, ok := ParseSpecies(*in.Species)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Species = v
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		v, ok := ParseGender(*in.Gender)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = v
	}
	if in.AgeYears != nil {
		if *in.AgeYears < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.AgeYears = *in.AgeYears
	}
	if in.AgeMonths != nil {
		if *in.AgeMonths < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.AgeMonths = *in.AgeMonths
	}
	if in.HealthStatus != nil {
		p.HealthStatus = strings.TrimSpace(*in.HealthStatus)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		v, ok := ParseStatus(*in.Status)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Status = v
	}
	if in.AdoptionFee != nil {
		fee, err := decimal.NewFromString(strings.TrimSpace(*in.AdoptionFee))
		if err != nil || fee.IsNegative() {
			return Pet{}, ErrInvalidInput
		}
		p.AdoptionFee = fee.Round(2)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// ListAvailable es el listado público (home), con búsqueda opcional.
func (s *Service) ListAvailable(ctx context.Context, search string) ([]Pet, error) {
	return s.repo.ListAvailable(ctx, strings.TrimSpace(search))
}

// ListByShelter lista las mascotas del refugio del actor (dashboard).
func (s *Service) ListByShelter(ctx context.Context, actor authz.Principal) ([]Pet, error) {
	if actor.Role != authz.RoleShelter || strings.TrimSpace(actor.ShelterID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByShelter(ctx, actor.ShelterID)
}

// Delete borra una mascota definitivamente. Antes de borrar:
//  1. snapshot a PetLogHistory (best-effort: un fallo ahí no bloquea el
//     borrado, igual que el resto de side effects del sistema),
//  2. unlink de sus solicitudes (sobreviven con referencia nil).
func (s *Service) Delete(ctx context.Context, actor authz.Principal, petID string) error {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if !authz.CanManageShelterPets(actor, p.ShelterID) {
		return ErrForbidden
	}
	return s.delete(ctx, p)
}

func (s *Service) delete(ctx context.Context, p Pet) error {
	if s.history != nil {
		if err := s.history.Create(ctx, s.snapshot(p)); err != nil {
			s.log.Warn("pet history capture failed", map[string]any{
				"pet_id": p.ID,
				"error":  err.Error(),
			})
		}
	}

	if s.apps != nil {
		if err := s.apps.UnlinkPet(ctx, p.ID); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, p.ID)
}

func (s *Service) snapshot(p Pet) LogEntry {
	petID := p.ID
	return LogEntry{
		ID:          uuid.NewString(),
		PetID:       &petID,
		ShelterID:   p.ShelterID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeYears:    p.AgeYears,
		AgeMonths:   p.AgeMonths,
		Description: p.Description,
		Status:      p.Status,
		Image:       p.Image,
		DateAdded:   p.DateAdded,
		DeletedAt:   s.now(),
	}
}

// PurgeByShelter borra todas las mascotas de un refugio por el camino
// normal (snapshot + unlink). Lo invoca el módulo shelters en su cascada.
func (s *Service) PurgeByShelter(ctx context.Context, shelterID string) error {
	items, err := s.repo.ListByShelter(ctx, shelterID)
	if err != nil {
		return err
	}
	for _, p := range items {
		if err := s.delete(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// HistoryByShelter lista los snapshots de borrado del refugio del actor,
// más reciente primero.
func (s *Service) HistoryByShelter(ctx context.Context, actor authz.Principal) ([]LogEntry, error) {
	if actor.Role != authz.RoleShelter || strings.TrimSpace(actor.ShelterID) == "" {
		return nil, ErrForbidden
	}
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListByShelter(ctx, actor.ShelterID)
}
