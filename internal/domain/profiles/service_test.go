package profiles

import (
	"context"
	"errors"
	"testing"

	"pet-shelter-adoption/internal/domain/authz"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID     map[string]Profile
	byUserID map[string]string // user -> profile ID
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}, byUserID: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	if _, ok := r.byUserID[p.UserID]; ok {
		return ErrConflict
	}
	r.byID[p.ID] = p
	r.byUserID[p.UserID] = p.ID
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	id, ok := r.byUserID[userID]
	if !ok {
		return Profile{}, errRepoNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) UnlinkShelter(ctx context.Context, shelterID string) error {
	for id, p := range r.byID {
		if p.ShelterID != nil && *p.ShelterID == shelterID {
			p.ShelterID = nil
			r.byID[id] = p
		}
	}
	return nil
}

func admin() authz.Principal {
	return authz.Principal{UserID: "admin-1", Role: authz.RoleAdmin}
}

// -------------------------
// Register
// -------------------------

func TestService_Register_OncePerIdentity(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Register(context.Background(), "user-1", RegisterInput{Name: "Ana", Role: "adopter"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if p.Role != authz.RoleAdopter || p.UserID != "user-1" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.ShelterID != nil {
		t.Fatalf("fresh profile must have no shelter")
	}

	_, err = svc.Register(context.Background(), "user-1", RegisterInput{Name: "Ana", Role: "shelter"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on re-register, got %v", err)
	}
}

func TestService_Register_AdminNotSelfAssignable(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Register(context.Background(), "user-1", RegisterInput{Name: "Ana", Role: "ADMIN"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for ADMIN signup, got %v", err)
	}
	_, err = svc.Register(context.Background(), "user-1", RegisterInput{Name: "Ana", Role: "superuser"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

// -------------------------
// AssignShelter / UnlinkShelter
// -------------------------

func TestService_AssignShelter_AdminOnly_ShelterRoleOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	staffProfile, _ := svc.Register(context.Background(), "user-1", RegisterInput{Name: "Eva", Role: "shelter"})
	adopterProfile, _ := svc.Register(context.Background(), "user-2", RegisterInput{Name: "Ana", Role: "adopter"})

	// no-admin no puede asignar
	staffActor := authz.Principal{UserID: "user-1", Role: authz.RoleShelter}
	if _, err := svc.AssignShelter(context.Background(), staffActor, staffProfile.ID, "shelter-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	// admin asigna a perfil SHELTER
	p, err := svc.AssignShelter(context.Background(), admin(), staffProfile.ID, "shelter-1")
	if err != nil {
		t.Fatalf("AssignShelter error: %v", err)
	}
	if p.ShelterID == nil || *p.ShelterID != "shelter-1" {
		t.Fatalf("expected affiliation shelter-1, got %v", p.ShelterID)
	}

	// los adoptantes no se afilian
	if _, err := svc.AssignShelter(context.Background(), admin(), adopterProfile.ID, "shelter-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for adopter profile, got %v", err)
	}

	// perfil inexistente
	if _, err := svc.AssignShelter(context.Background(), admin(), "nope", "shelter-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_UnlinkShelter_ClearsAffiliation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p1, _ := svc.Register(context.Background(), "user-1", RegisterInput{Name: "Eva", Role: "shelter"})
	p2, _ := svc.Register(context.Background(), "user-2", RegisterInput{Name: "Leo", Role: "shelter"})
	if _, err := svc.AssignShelter(context.Background(), admin(), p1.ID, "shelter-1"); err != nil {
		t.Fatalf("AssignShelter error: %v", err)
	}
	if _, err := svc.AssignShelter(context.Background(), admin(), p2.ID, "shelter-2"); err != nil {
		t.Fatalf("AssignShelter error: %v", err)
	}

	if err := svc.UnlinkShelter(context.Background(), "shelter-1"); err != nil {
		t.Fatalf("UnlinkShelter error: %v", err)
	}

	got1, _ := repo.GetByID(context.Background(), p1.ID)
	if got1.ShelterID != nil {
		t.Fatalf("shelter-1 staff should be unlinked")
	}
	got2, _ := repo.GetByID(context.Background(), p2.ID)
	if got2.ShelterID == nil || *got2.ShelterID != "shelter-2" {
		t.Fatalf("other shelter's staff must keep affiliation")
	}
}

func TestService_Me(t *testing.T) {
	svc := NewService(newTestRepo())

	p, _ := svc.Register(context.Background(), "user-1", RegisterInput{Name: "Ana", Role: "adopter"})

	got, err := svc.Me(context.Background(), "user-1")
	if err != nil || got.ID != p.ID {
		t.Fatalf("Me: got %+v err=%v", got, err)
	}
	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
