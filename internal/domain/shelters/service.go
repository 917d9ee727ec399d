package shelters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-shelter-adoption/internal/domain/authz"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// PetPurger elimina todas las mascotas de un refugio pasando por el camino
// normal de borrado (snapshot de historial + unlink de solicitudes).
// Interfaz local para no acoplar shelters -> pets (mismo truco que OwnerOf
// en el módulo pets).
type PetPurger interface {
	PurgeByShelter(ctx context.Context, shelterID string) error
}

// StaffUnlinker desafilia al staff del refugio (set-null).
type StaffUnlinker interface {
	UnlinkShelter(ctx context.Context, shelterID string) error
}

type Service struct {
	repo  Repository
	pets  PetPurger
	staff StaffUnlinker
	now   func() time.Time
}

func NewService(repo Repository, pets PetPurger, staff StaffUnlinker) *Service {
	return &Service{
		repo:  repo,
		pets:  pets,
		staff: staff,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name            string
	Address         string
	City            string
	Province        string
	PostalCode      string
	PhoneNumber     string
	Email           string
	SocialMediaPage string
	Description     string
	Logo            string
}

// Create registra un refugio. Solo administradores.
func (s *Service) Create(ctx context.Context, actor authz.Principal, in CreateInput) (Shelter, error) {
	if !authz.CanAdministrate(actor) {
		return Shelter{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return Shelter{}, ErrInvalidInput
	}

	sh := Shelter{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Address:         strings.TrimSpace(in.Address),
		City:            strings.TrimSpace(in.City),
		Province:        strings.TrimSpace(in.Province),
		PostalCode:      strings.TrimSpace(in.PostalCode),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		Email:           strings.TrimSpace(in.Email),
		SocialMediaPage: strings.TrimSpace(in.SocialMediaPage),
		Description:     strings.TrimSpace(in.Description),
		Logo:            strings.TrimSpace(in.Logo),
		DateRegistered:  s.now(),
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Shelter{}, ErrInvalidInput
	}
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Shelter{}, ErrNotFound
	}
	return sh, nil
}

// List devuelve todos los refugios (página pública "about").
func (s *Service) List(ctx context.Context) ([]Shelter, error) {
	return s.repo.List(ctx)
}

// Delete elimina un refugio. Solo administradores. Cascada:
// cada mascota pasa por su borrado normal (snapshot + unlink de
// solicitudes) y el staff queda desafiliado.
func (s *Service) Delete(ctx context.Context, actor authz.Principal, id string) error {
	if !authz.CanAdministrate(actor) {
		return ErrForbidden
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}

	if s.pets != nil {
		if err := s.pets.PurgeByShelter(ctx, id); err != nil {
			return err
		}
	}
	if s.staff != nil {
		if err := s.staff.UnlinkShelter(ctx, id); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

// ContactEmail expone el email de contacto de un refugio ("" si no existe).
// Lo usa el módulo applications para notificar nuevas solicitudes sin
// acoplarse a este paquete.
func (s *Service) ContactEmail(ctx context.Context, shelterID string) (string, error) {
	sh, err := s.GetByID(ctx, shelterID)
	if err != nil {
		return "", err
	}
	return sh.Email, nil
}
