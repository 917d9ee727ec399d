package authz

import "testing"

func TestCanManageShelterPets(t *testing.T) {
	cases := []struct {
		name      string
		p         Principal
		shelterID string
		want      bool
	}{
		{"staff propio refugio", Principal{UserID: "u1", Role: RoleShelter, ShelterID: "s1"}, "s1", true},
		{"staff otro refugio", Principal{UserID: "u1", Role: RoleShelter, ShelterID: "s1"}, "s2", false},
		{"staff sin afiliación", Principal{UserID: "u1", Role: RoleShelter}, "s1", false},
		{"adopter", Principal{UserID: "u1", Role: RoleAdopter, ShelterID: "s1"}, "s1", false},
		{"admin no gestiona mascotas", Principal{UserID: "u1", Role: RoleAdmin, ShelterID: "s1"}, "s1", false},
		{"anónimo", Principal{}, "s1", false},
		{"recurso sin refugio", Principal{UserID: "u1", Role: RoleShelter, ShelterID: "s1"}, "", false},
	}

	for _, tc := range cases {
		if got := CanManageShelterPets(tc.p, tc.shelterID); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanViewApplication(t *testing.T) {
	app := ApplicationRef{
		ApplicantUserID: "u1",
		Email:           "ana@example.com",
		FirstName:       "Ana",
		ShelterID:       "s1",
	}

	// solicitante por user ID
	if !CanViewApplication(Principal{UserID: "u1", Role: RoleAdopter}, app) {
		t.Errorf("applicant by user ID should view")
	}
	// mismo email pero distinto user ID: el user ID manda cuando existe
	if CanViewApplication(Principal{UserID: "u2", Email: "ana@example.com", Role: RoleAdopter}, app) {
		t.Errorf("user ID mismatch must win over email match")
	}
	// staff del refugio dueño
	if !CanViewApplication(Principal{UserID: "u9", Role: RoleShelter, ShelterID: "s1"}, app) {
		t.Errorf("owning shelter staff should view")
	}
	// staff de otro refugio
	if CanViewApplication(Principal{UserID: "u9", Role: RoleShelter, ShelterID: "s2"}, app) {
		t.Errorf("other shelter staff must not view")
	}
	// anónimo
	if CanViewApplication(Principal{}, app) {
		t.Errorf("anonymous must not view")
	}
}

func TestCanViewApplication_LegacyRows(t *testing.T) {
	// Filas históricas sin user ID capturado: fallback por email o nombre.
	legacy := ApplicationRef{Email: "ana@example.com", FirstName: "Ana", ShelterID: "s1"}

	if !CanViewApplication(Principal{UserID: "u5", Email: "ana@example.com"}, legacy) {
		t.Errorf("legacy email match should view")
	}
	if !CanViewApplication(Principal{UserID: "u5", Name: "Ana"}, legacy) {
		t.Errorf("legacy first-name match should view")
	}
	if CanViewApplication(Principal{UserID: "u5", Email: "otra@example.com", Name: "Eva"}, legacy) {
		t.Errorf("no match must not view")
	}
	// campos vacíos de ambos lados no cuentan como match
	blank := ApplicationRef{ShelterID: "s1"}
	if CanViewApplication(Principal{UserID: "u5"}, blank) {
		t.Errorf("empty email/name must never match")
	}
}

func TestCanAdministrate(t *testing.T) {
	if !CanAdministrate(Principal{UserID: "u1", Role: RoleAdmin}) {
		t.Errorf("admin should administrate")
	}
	if CanAdministrate(Principal{UserID: "u1", Role: RoleShelter}) {
		t.Errorf("shelter staff must not administrate")
	}
	if CanAdministrate(Principal{Role: RoleAdmin}) {
		t.Errorf("anonymous with admin role claim must not administrate")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" shelter "); !ok || r != RoleShelter {
		t.Errorf("ParseRole shelter: got %v %v", r, ok)
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Errorf("unknown role must not parse")
	}
}
