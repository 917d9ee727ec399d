package profiles

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
	ErrConflict     = errors.New("already registered")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name string
	Role string
}

// Register crea el perfil de una identidad. Una sola vez por identidad:
// un segundo registro del mismo user devuelve ErrConflict.
// El rol ADMIN no es auto-asignable por signup.
func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Profile{}, ErrInvalidInput
	}

	role, ok := authz.ParseRole(in.Role)
	if !ok || role == authz.RoleAdmin {
		return Profile{}, ErrInvalidInput
	}

	if existing, err := s.repo.GetByUserID(ctx, userID); err == nil && existing.ID != "" {
		return Profile{}, ErrConflict
	}

	p := Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Me devuelve el perfil del principal actual.
func (s *Service) Me(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// AssignShelter afilia un perfil de staff a un refugio. Solo administradores
// (en el flujo original las cuentas de staff las crea un superuser).
func (s *Service) AssignShelter(ctx context.Context, actor authz.Principal, profileID, shelterID string) (Profile, error) {
	if !authz.CanAdministrate(actor) {
		return Profile{}, ErrForbidden
	}

	profileID = strings.TrimSpace(profileID)
	shelterID = strings.TrimSpace(shelterID)
	if profileID == "" || shelterID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return Profile{}, ErrNotFound
	}
	if p.Role != authz.RoleShelter {
		return Profile{}, ErrInvalidInput
	}

	p.ShelterID = &shelterID
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// UnlinkShelter desafilia a todo el staff del refugio dado. Lo invoca el
// módulo shelters al eliminar un refugio.
func (s *Service) UnlinkShelter(ctx context.Context, shelterID string) error {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return ErrInvalidInput
	}
	return s.repo.UnlinkShelter(ctx, shelterID)
}
