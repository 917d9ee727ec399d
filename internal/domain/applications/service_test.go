package applications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-shelter-adoption/internal/domain/authz"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID       map[string]Application
	requestIDs map[string]bool

	// petStatus simula la tabla de mascotas para verificar el flip
	// atómico en Approve.
	petStatus map[string]string

	failApprove map[string]bool // request_id -> forzar fallo
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:        map[string]Application{},
		requestIDs:  map[string]bool{},
		petStatus:   map[string]string{},
		failApprove: map[string]bool{},
	}
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	if r.requestIDs[a.RequestID] {
		return ErrConflict
	}
	r.requestIDs[a.RequestID] = true
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, a Application) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Approve(ctx context.Context, a Application) error {
	if r.failApprove[a.RequestID] {
		return errors.New("repo: approve failed")
	}
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	if a.PetID != nil {
		r.petStatus[*a.PetID] = "ADOPTED"
	}
	return nil
}

func (r *testRepo) ListByShelter(ctx context.Context, shelterID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.ShelterID == shelterID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByEmail(ctx context.Context, email string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListPendingByPet(ctx context.Context, petID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.PetID != nil && *a.PetID == petID && a.Status == StatusPending {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) UnlinkPet(ctx context.Context, petID string) error {
	for id, a := range r.byID {
		if a.PetID != nil && *a.PetID == petID {
			a.PetID = nil
			r.byID[id] = a
		}
	}
	return nil
}

// -------------------------
// Fakes de catálogo y notifier
// -------------------------

type testCatalog struct {
	byID map[string]PetSnapshot
}

func (c *testCatalog) Snapshot(ctx context.Context, petID string) (PetSnapshot, error) {
	p, ok := c.byID[petID]
	if !ok {
		return PetSnapshot{}, errRepoNotFound
	}
	return p, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type testNotifier struct {
	sent []sentMail
	err  error
}

func (n *testNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return n.err
}

func newTestService() (*Service, *testRepo, *testCatalog, *testNotifier) {
	repo := newTestRepo()
	catalog := &testCatalog{byID: map[string]PetSnapshot{
		"pet-1": {ID: "pet-1", Name: "Luna", Image: "luna.jpg", ShelterID: "shelter-1", ShelterEmail: "contact@shelter.test"},
	}}
	notifier := &testNotifier{}

	svc := NewService(repo, catalog, notifier, nil)
	svc.dispatch = func(fn func()) { fn() } // síncrono para tests
	return svc, repo, catalog, notifier
}

func adopter() authz.Principal {
	return authz.Principal{UserID: "user-1", Email: "ana@example.com", Name: "Ana", Role: authz.RoleAdopter}
}

func staff(shelterID string) authz.Principal {
	return authz.Principal{UserID: "staff-1", Email: "staff@shelter.test", Role: authz.RoleShelter, ShelterID: shelterID}
}

func validInput() SubmitInput {
	return SubmitInput{
		Phone:    "555-0101",
		Address:  "Av. Siempre Viva 742",
		City:     "Lima",
		Province: "Lima",
		Reason:   "Tengo jardín y experiencia con perros.",
	}
}

// -------------------------
// Submit
// -------------------------

func TestService_Submit_CreatesPending_WithSnapshot(t *testing.T) {
	svc, repo, _, notifier := newTestService()

	now := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Submit(context.Background(), adopter(), "pet-1", validInput())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if a.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", a.Status)
	}
	if a.RequestID != "REQ-20260315093045" {
		t.Fatalf("unexpected request ID: %s", a.RequestID)
	}
	if a.PetID == nil || *a.PetID != "pet-1" {
		t.Fatalf("expected pet reference pet-1, got %v", a.PetID)
	}
	if a.ApplicantUserID != "user-1" || a.FirstName != "Ana" || a.Email != "ana@example.com" {
		t.Fatalf("applicant identity not captured: %+v", a)
	}
	if a.PetName != "Luna" || a.ShelterID != "shelter-1" {
		t.Fatalf("pet snapshot not denormalized: %+v", a)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatalf("application not persisted")
	}

	// Notificación al refugio (best-effort, pero el fake es síncrono)
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 shelter notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].To != "contact@shelter.test" {
		t.Fatalf("notification went to %s", notifier.sent[0].To)
	}
	if !strings.Contains(notifier.sent[0].Body, a.RequestID) {
		t.Fatalf("notification body should mention the request ID")
	}
}

func TestService_Submit_Anonymous_Forbidden(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), authz.Principal{}, "pet-1", validInput())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Submit_UnknownPet_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), adopter(), "no-such-pet", validInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Submit_MissingFields_Validation(t *testing.T) {
	svc, repo, _, _ := newTestService()

	in := validInput()
	in.Phone = "   " // solo espacios: cuenta como vacío

	_, err := svc.Submit(context.Background(), adopter(), "pet-1", in)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestService_Submit_SameSecond_Conflict(t *testing.T) {
	svc, _, _, _ := newTestService()

	now := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Submit(context.Background(), adopter(), "pet-1", validInput()); err != nil {
		t.Fatalf("Submit #1 error: %v", err)
	}

	// mismo segundo => mismo request_id => conflicto del storage
	_, err := svc.Submit(context.Background(), adopter(), "pet-1", validInput())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_Submit_BlankName_FallsBackToUserID(t *testing.T) {
	svc, _, _, _ := newTestService()

	p := adopter()
	p.Name = ""

	a, err := svc.Submit(context.Background(), p, "pet-1", validInput())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if a.FirstName != p.UserID {
		t.Fatalf("expected FirstName fallback to user ID, got %q", a.FirstName)
	}
}

// -------------------------
// Transition
// -------------------------

func TestService_Transition_Table(t *testing.T) {
	cases := []struct {
		from   Status
		target string
		ok     bool
	}{
		{StatusPending, "APPROVED", true},
		{StatusPending, "REJECTED", true},
		{StatusPending, "COMPLETED", false},
		{StatusApproved, "COMPLETED", true},
		{StatusApproved, "REJECTED", false},
		{StatusApproved, "PENDING", false},
		{StatusRejected, "APPROVED", false},
		{StatusRejected, "PENDING", false},
		{StatusCompleted, "PENDING", false},
		{StatusPending, "PENDING", false}, // self-transition también se niega
	}

	for _, tc := range cases {
		svc, repo, _, _ := newTestService()

		petID := "pet-1"
		a := Application{
			ID: "app-1", RequestID: "REQ-20260101000000", PetID: &petID,
			Email: "ana@example.com", ShelterID: "shelter-1", Status: tc.from,
		}
		repo.byID[a.ID] = a

		_, err := svc.Transition(context.Background(), staff("shelter-1"), "app-1", tc.target)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.target, err)
		}
		if !tc.ok {
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("%s -> %s: expected ErrValidation, got %v", tc.from, tc.target, err)
			}
			if repo.byID["app-1"].Status != tc.from {
				t.Fatalf("%s -> %s: status mutated on rejected transition", tc.from, tc.target)
			}
		}
	}
}

func TestService_Transition_UnknownStatus_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Transition(context.Background(), staff("shelter-1"), "app-1", "ARCHIVED")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestService_Transition_CrossShelterStaff_Forbidden(t *testing.T) {
	svc, repo, _, _ := newTestService()

	petID := "pet-1"
	repo.byID["app-1"] = Application{
		ID: "app-1", RequestID: "REQ-20260101000000", PetID: &petID,
		ShelterID: "shelter-1", Status: StatusPending,
	}

	_, err := svc.Transition(context.Background(), staff("shelter-2"), "app-1", "APPROVED")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.byID["app-1"].Status != StatusPending {
		t.Fatalf("status mutated on forbidden transition")
	}
}

func TestService_Transition_Approve_FlipsPetAndNotifies(t *testing.T) {
	svc, repo, _, notifier := newTestService()

	petID := "pet-1"
	repo.byID["app-1"] = Application{
		ID: "app-1", RequestID: "REQ-20260101000000", PetID: &petID,
		FirstName: "Ana", Email: "ana@example.com", PetName: "Luna",
		ShelterID: "shelter-1", Status: StatusPending,
	}

	a, err := svc.Transition(context.Background(), staff("shelter-1"), "app-1", "approved")
	if err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if a.Status != StatusApproved {
		t.Fatalf("expected APPROVED, got %s", a.Status)
	}
	if repo.petStatus["pet-1"] != "ADOPTED" {
		t.Fatalf("expected pet flipped to ADOPTED, got %q", repo.petStatus["pet-1"])
	}
	if len(notifier.sent) != 1 || notifier.sent[0].To != "ana@example.com" {
		t.Fatalf("expected applicant notification, got %+v", notifier.sent)
	}
	if !strings.Contains(notifier.sent[0].Subject, "approved") {
		t.Fatalf("unexpected subject: %s", notifier.sent[0].Subject)
	}
}

func TestService_Transition_NotifierFailure_DoesNotRevert(t *testing.T) {
	svc, repo, _, notifier := newTestService()
	notifier.err = errors.New("smtp down")

	petID := "pet-1"
	repo.byID["app-1"] = Application{
		ID: "app-1", RequestID: "REQ-20260101000000", PetID: &petID,
		Email: "ana@example.com", ShelterID: "shelter-1", Status: StatusPending,
	}

	a, err := svc.Transition(context.Background(), staff("shelter-1"), "app-1", "REJECTED")
	if err != nil {
		t.Fatalf("Transition must not propagate notifier errors, got %v", err)
	}
	if a.Status != StatusRejected || repo.byID["app-1"].Status != StatusRejected {
		t.Fatalf("transition should persist despite notifier failure")
	}
}

// -------------------------
// BulkApprove
// -------------------------

func TestService_BulkApprove_CountsOnlySuccesses(t *testing.T) {
	svc, repo, _, notifier := newTestService()

	petID := "pet-1"
	for i, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		repo.byID[id] = Application{
			ID: id, RequestID: "REQ-2026010100000" + string(rune('0'+i)), PetID: &petID,
			Email: "ana@example.com", ShelterID: "shelter-1", Status: StatusPending,
		}
	}
	// dos fallan en el storage
	repo.failApprove[repo.byID["a2"].RequestID] = true
	repo.failApprove[repo.byID["a4"].RequestID] = true

	count, err := svc.BulkApprove(context.Background(), staff("shelter-1"), "pet-1")
	if err != nil {
		t.Fatalf("BulkApprove error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 approved, got %d", count)
	}
	if repo.petStatus["pet-1"] != "ADOPTED" {
		t.Fatalf("expected pet flipped to ADOPTED")
	}
	// una notificación por aprobación exitosa, ninguna por las fallidas
	if len(notifier.sent) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.sent))
	}
	if repo.byID["a2"].Status != StatusPending || repo.byID["a4"].Status != StatusPending {
		t.Fatalf("failed approvals must stay PENDING")
	}
}

func TestService_BulkApprove_CrossShelter_Forbidden(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.BulkApprove(context.Background(), staff("shelter-2"), "pet-1")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// -------------------------
// Listados y detalle
// -------------------------

func TestService_ListForApplicant_ExactEmail_Annotated(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.byID["a1"] = Application{ID: "a1", Email: "ana@example.com", Status: StatusApproved}
	repo.byID["a2"] = Application{ID: "a2", Email: "ANA@example.com", Status: StatusPending} // distinto: match exacto
	repo.byID["a3"] = Application{ID: "a3", Email: "otro@example.com", Status: StatusPending}

	items, err := svc.ListForApplicant(context.Background(), adopter())
	if err != nil {
		t.Fatalf("ListForApplicant error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 application, got %d", len(items))
	}
	if items[0].StatusInfo.Label != "Approved" || items[0].StatusInfo.Action != "Contact Shelter" {
		t.Fatalf("unexpected status descriptor: %+v", items[0].StatusInfo)
	}
}

func TestService_ListForApplicant_NoEmail_Empty(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["a1"] = Application{ID: "a1", Email: "", Status: StatusPending}

	p := adopter()
	p.Email = ""

	items, err := svc.ListForApplicant(context.Background(), p)
	if err != nil {
		t.Fatalf("ListForApplicant error: %v", err)
	}
	// sin email no hay con qué matchear; ni siquiera contra filas sin email
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d", len(items))
	}
}

func TestService_ListForShelter_RequiresAffiliation(t *testing.T) {
	svc, _, _, _ := newTestService()

	orphan := staff("")
	if _, err := svc.ListForShelter(context.Background(), orphan); !errors.Is(err, ErrForbidden) {
		t.Fatalf("staff sin refugio: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListForShelter(context.Background(), adopter()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("adopter: expected ErrForbidden, got %v", err)
	}
}

func TestService_GetByID_ForbiddenIsNotNotFound(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.byID["a1"] = Application{
		ID: "a1", ApplicantUserID: "user-1", Email: "ana@example.com",
		ShelterID: "shelter-1", Status: StatusPending,
	}

	// solicitante original
	if _, err := svc.GetByID(context.Background(), adopter(), "a1"); err != nil {
		t.Fatalf("applicant should see own application: %v", err)
	}
	// staff del refugio dueño
	if _, err := svc.GetByID(context.Background(), staff("shelter-1"), "a1"); err != nil {
		t.Fatalf("owning staff should see application: %v", err)
	}
	// tercero autenticado: Forbidden explícito, no NotFound
	stranger := authz.Principal{UserID: "user-9", Email: "x@example.com", Role: authz.RoleAdopter}
	if _, err := svc.GetByID(context.Background(), stranger, "a1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// inexistente: NotFound
	if _, err := svc.GetByID(context.Background(), adopter(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// -------------------------
// UnlinkPet
// -------------------------

func TestService_UnlinkPet_ApplicationsSurvive(t *testing.T) {
	svc, repo, _, _ := newTestService()

	petID := "pet-1"
	repo.byID["a1"] = Application{ID: "a1", PetID: &petID, PetName: "Luna", ShelterID: "shelter-1", Status: StatusPending}

	if err := svc.UnlinkPet(context.Background(), "pet-1"); err != nil {
		t.Fatalf("UnlinkPet error: %v", err)
	}

	a := repo.byID["a1"]
	if a.PetID != nil {
		t.Fatalf("expected pet reference cleared")
	}
	if a.PetName != "Luna" || a.ShelterID != "shelter-1" {
		t.Fatalf("denormalized snapshot must survive the unlink")
	}
}
