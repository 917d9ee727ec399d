package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pet-shelter-adoption/internal/domain/authz"
	"pet-shelter-adoption/internal/platform/logger"
	"pet-shelter-adoption/internal/ports/notify"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")

	// ErrConflict: colisión de request_id (dos solicitudes en el mismo
	// segundo) o doble submit. Nada queda persistido.
	ErrConflict = errors.New("conflict")
)

const notifyTimeout = 5 * time.Second

// PetSnapshot son los datos mínimos de la mascota que la máquina de
// estados necesita. Interfaz/struct locales para no acoplar
// applications -> pets/shelters (mismo truco que OwnerOf en pets).
type PetSnapshot struct {
	ID        string
	Name      string
	Image     string
	ShelterID string

	// ShelterEmail puede venir vacío (refugio sin contacto): en ese caso
	// simplemente no se notifica.
	ShelterEmail string
}

type PetCatalog interface {
	Snapshot(ctx context.Context, petID string) (PetSnapshot, error)
}

var validate = validator.New()

type Service struct {
	repo     Repository
	pets     PetCatalog
	notifier notify.Notifier
	log      logger.Logger

	now func() time.Time

	// dispatch corre los envíos de notificación fire-and-forget.
	// Default: goroutine. Inyectable para tests síncronos.
	dispatch func(fn func())
}

func NewService(repo Repository, pets PetCatalog, notifier notify.Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	return &Service{
		repo:     repo,
		pets:     pets,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		dispatch: func(fn func()) { go fn() },
	}
}

// SubmitInput son los campos del formulario de adopción. Nombre y email
// del solicitante salen del principal autenticado, no del body.
type SubmitInput struct {
	Phone    string `validate:"required"`
	Address  string `validate:"required"`
	City     string `validate:"required"`
	Province string `validate:"required"`
	Reason   string `validate:"required"`
}

// Submit crea una solicitud en PENDING para la mascota dada.
// Side effect best-effort: notifica al email de contacto del refugio
// (si tiene) que llegó una solicitud nueva.
func (s *Service) Submit(ctx context.Context, actor authz.Principal, petID string, in SubmitInput) (Application, error) {
	if actor.Anonymous() {
		return Application{}, ErrForbidden
	}
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Application{}, ErrNotFound
	}

	pet, err := s.pets.Snapshot(ctx, petID)
	if err != nil {
		return Application{}, ErrNotFound
	}

	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Province = strings.TrimSpace(in.Province)
	in.Reason = strings.TrimSpace(in.Reason)

	if err := validate.Struct(in); err != nil {
		return Application{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	now := s.now()
	firstName := strings.TrimSpace(actor.Name)
	if firstName == "" {
		firstName = actor.UserID
	}

	a := Application{
		ID:              uuid.NewString(),
		RequestID:       GenerateRequestID(now),
		PetID:           &pet.ID,
		ApplicantUserID: actor.UserID,
		FirstName:       firstName,
		Email:           strings.TrimSpace(actor.Email),
		Phone:           in.Phone,
		Address:         in.Address,
		City:            in.City,
		Province:        in.Province,
		Reason:          in.Reason,
		PetName:         pet.Name,
		PetImage:        pet.Image,
		ShelterID:       pet.ShelterID,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}

	s.notify(pet.ShelterEmail,
		fmt.Sprintf("New Adoption Application for %s", pet.Name),
		fmt.Sprintf(
			"A new adoption application (ID: %s) was submitted for %s.\n\n"+
				"Applicant: %s\nEmail: %s\nPhone: %s\n\nReason:\n%s\n\n"+
				"Manage applications in the shelter dashboard.",
			a.RequestID, pet.Name, a.FirstName, a.Email, a.Phone, a.Reason,
		))

	return a, nil
}

// Transition mueve la solicitud a target según la tabla cerrada de la
// máquina de estados. Solo staff del refugio dueño. En APPROVED también
// marca la mascota como ADOPTED, en la misma unidad atómica.
// La notificación al solicitante es fire-and-forget: su resultado nunca
// revierte ni bloquea el cambio de estado.
func (s *Service) Transition(ctx context.Context, actor authz.Principal, appID, target string) (Application, error) {
	to, ok := ParseStatus(target)
	if !ok {
		return Application{}, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	a, err := s.repo.GetByID(ctx, appID)
	if err != nil {
		return Application{}, ErrNotFound
	}

	if !authz.CanManageShelterPets(actor, a.ShelterID) {
		return Application{}, ErrForbidden
	}

	if !CanTransition(a.Status, to) {
		return Application{}, fmt.Errorf("%w: cannot move %s to %s", ErrValidation, a.Status, to)
	}

	a.Status = to
	a.UpdatedAt = s.now()

	if to == StatusApproved {
		err = s.repo.Approve(ctx, a)
	} else {
		err = s.repo.UpdateStatus(ctx, a)
	}
	if err != nil {
		return Application{}, err
	}

	s.notifyApplicant(a)
	return a, nil
}

// BulkApprove aprueba todas las solicitudes PENDING de la mascota, cada una
// con su propia notificación, y devuelve cuántas quedaron aprobadas.
// Cada aprobación se commitea por separado: un fallo a mitad deja las
// anteriores aprobadas y se reporta solo el conteo de éxitos.
// La mascota queda ADOPTED igual que en la aprobación individual.
func (s *Service) BulkApprove(ctx context.Context, actor authz.Principal, petID string) (int, error) {
	pet, err := s.pets.Snapshot(ctx, petID)
	if err != nil {
		return 0, ErrNotFound
	}
	if !authz.CanManageShelterPets(actor, pet.ShelterID) {
		return 0, ErrForbidden
	}

	pending, err := s.repo.ListPendingByPet(ctx, petID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, a := range pending {
		if !CanTransition(a.Status, StatusApproved) {
			continue
		}
		a.Status = StatusApproved
		a.UpdatedAt = s.now()

		if err := s.repo.Approve(ctx, a); err != nil {
			s.log.Warn("bulk approve: skipping application", map[string]any{
				"request_id": a.RequestID,
				"error":      err.Error(),
			})
			continue
		}
		count++
		s.notifyApplicant(a)
	}

	return count, nil
}

// ListForShelter devuelve las solicitudes de mascotas del refugio del
// actor, más reciente primero.
func (s *Service) ListForShelter(ctx context.Context, actor authz.Principal) ([]Application, error) {
	if actor.Role != authz.RoleShelter || strings.TrimSpace(actor.ShelterID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByShelter(ctx, actor.ShelterID)
}

// Annotated acompaña cada solicitud con su descriptor de status para UI.
type Annotated struct {
	Application
	StatusInfo StatusInfo
}

// ListForApplicant devuelve las solicitudes cuyo email coincide exacto con
// el del actor, más reciente primero, anotadas con el descriptor de status.
func (s *Service) ListForApplicant(ctx context.Context, actor authz.Principal) ([]Annotated, error) {
	if actor.Anonymous() {
		return nil, ErrForbidden
	}

	email := strings.TrimSpace(actor.Email)
	if email == "" {
		return []Annotated{}, nil
	}

	items, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	out := make([]Annotated, 0, len(items))
	for _, a := range items {
		out = append(out, Annotated{Application: a, StatusInfo: InfoFor(a.Status)})
	}
	return out, nil
}

// GetByID devuelve el detalle si el actor es staff del refugio dueño o el
// solicitante original. La negación es un Forbidden explícito, distinto
// de not-found.
func (s *Service) GetByID(ctx context.Context, actor authz.Principal, appID string) (Application, error) {
	a, err := s.repo.GetByID(ctx, appID)
	if err != nil {
		return Application{}, ErrNotFound
	}

	ok := authz.CanViewApplication(actor, authz.ApplicationRef{
		ApplicantUserID: a.ApplicantUserID,
		Email:           a.Email,
		FirstName:       a.FirstName,
		ShelterID:       a.ShelterID,
	})
	if !ok {
		return Application{}, ErrForbidden
	}
	return a, nil
}

// UnlinkPet lo invoca el módulo pets antes de borrar una mascota.
func (s *Service) UnlinkPet(ctx context.Context, petID string) error {
	return s.repo.UnlinkPet(ctx, petID)
}

func (s *Service) notifyApplicant(a Application) {
	var subject, body string

	switch a.Status {
	case StatusApproved:
		subject = fmt.Sprintf("Adoption application %s approved", a.RequestID)
		body = fmt.Sprintf(
			"Hello %s,\n\nGood news — your adoption application for %s (ID %s) has been approved.\n\n"+
				"The shelter will contact you with next steps.\n\nThanks,\nPetConnect Team",
			a.FirstName, a.PetName, a.RequestID)
	case StatusRejected:
		subject = fmt.Sprintf("Adoption application %s update", a.RequestID)
		body = fmt.Sprintf(
			"Hello %s,\n\nWe are sorry to inform you that your adoption application for %s (ID %s) has been rejected.\n\n"+
				"If you have questions, please contact the shelter.\n\nThanks,\nPetConnect Team",
			a.FirstName, a.PetName, a.RequestID)
	default:
		subject = fmt.Sprintf("Adoption application %s update", a.RequestID)
		body = fmt.Sprintf(
			"Hello %s,\n\nYour adoption application for %s (ID %s) has been set to: %s.\n\n"+
				"If you have questions, please contact the shelter.\n\nThanks,\nPetConnect Team",
			a.FirstName, a.PetName, a.RequestID, a.Status)
	}

	s.notify(a.Email, subject, body)
}

// notify despacha sin bloquear; errores solo se loguean (cero reintentos).
func (s *Service) notify(to, subject, body string) {
	to = strings.TrimSpace(to)
	if s.notifier == nil || to == "" {
		return
	}

	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Send(ctx, to, subject, body); err != nil {
			s.log.Warn("notification failed", map[string]any{
				"recipient": to,
				"subject":   subject,
				"error":     err.Error(),
			})
		}
	})
}
