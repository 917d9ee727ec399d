package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-shelter-adoption/internal/domain/authz"
	"pet-shelter-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Público
	r.Get("/pets", listAvailableHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc))

	// Dashboard (staff del refugio)
	r.Post("/pets", createPetHandler(svc))
	r.Patch("/pets/{petID}", updatePetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))
	r.Get("/dashboard/pets", listShelterPetsHandler(svc))
	r.Get("/dashboard/history", listHistoryHandler(svc))
}

type createPetRequest struct {
	Name         string `json:"name"`
	Species      string `json:"species" enums:"DOG,CAT,BIRD,OTHER"`
	Breed        string `json:"breed"`
	Gender       string `json:"gender" enums:"MALE,FEMALE,UNKNOWN"`
	AgeYears     int    `json:"age_years"`
	AgeMonths    int    `json:"age_months"`
	HealthStatus string `json:"health_status"`
	Description  string `json:"description"`
	Status       string `json:"status" enums:"AVAILABLE,ADOPTED,PENDING"`
	AdoptionFee  string `json:"adoption_fee"` // decimal con 2 decimales, como string
	Image        string `json:"image"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string `json:"name"`
	Species      *string `json:"species"`
	Breed        *string `json:"breed"`
	Gender       *string `json:"gender"`
	AgeYears     *int    `json:"age_years"`
	AgeMonths    *int    `json:"age_months"`
	HealthStatus *string `json:"health_status"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	AdoptionFee  *string `json:"adoption_fee"`
	Image        *string `json:"image"`
}

type petResponse struct {
	ID           string    `json:"id"`
	ShelterID    string    `json:"shelter_id"`
	Name         string    `json:"name"`
	Species      Species   `json:"species"`
	Breed        string    `json:"breed"`
	Gender       Gender    `json:"gender"`
	AgeYears     int       `json:"age_years"`
	AgeMonths    int       `json:"age_months"`
	HealthStatus string    `json:"health_status"`
	Description  string    `json:"description,omitempty"`
	Status       Status    `json:"status"`
	AdoptionFee  string    `json:"adoption_fee"`
	Image        string    `json:"image,omitempty"`
	DateAdded    time.Time `json:"date_added"`
}

type historyResponse struct {
	ID          string    `json:"id"`
	PetID       *string   `json:"pet_id"`
	Name        string    `json:"name"`
	Species     Species   `json:"species"`
	Breed       string    `json:"breed"`
	AgeYears    int       `json:"age_years"`
	AgeMonths   int       `json:"age_months"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Image       string    `json:"image,omitempty"`
	DateAdded   time.Time `json:"date_added"`
	DeletedAt   time.Time `json:"deleted_at"`
}

func listAvailableHandler(svc *Service) http.HandlerFunc {
	// Home pública: mascotas AVAILABLE, con ?search= opcional.
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAvailable(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), actor, CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Gender:       req.Gender,
			AgeYears:     req.AgeYears,
			AgeMonths:    req.AgeMonths,
			HealthStatus: req.HealthStatus,
			Description:  req.Description,
			Status:       req.Status,
			AdoptionFee:  req.AdoptionFee,
			Image:        req.Image,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), actor, chi.URLParam(r, "petID"), UpdateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Gender:       req.Gender,
			AgeYears:     req.AgeYears,
			AgeMonths:    req.AgeMonths,
			HealthStatus: req.HealthStatus,
			Description:  req.Description,
			Status:       req.Status,
			AdoptionFee:  req.AdoptionFee,
			Image:        req.Image,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listShelterPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByShelter(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.HistoryByShelter(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]historyResponse, 0, len(items))
		for _, e := range items {
			out = append(out, historyResponse{
				ID:          e.ID,
				PetID:       e.PetID,
				Name:        e.Name,
				Species:     e.Species,
				Breed:       e.Breed,
				AgeYears:    e.AgeYears,
				AgeMonths:   e.AgeMonths,
				Description: e.Description,
				Status:      e.Status,
				Image:       e.Image,
				DateAdded:   e.DateAdded,
				DeletedAt:   e.DeletedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func principal(r *http.Request) (authz.Principal, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return authz.Principal{}, false
	}
	return authz.FromClaims(claims), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		ShelterID:    p.ShelterID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Gender:       p.Gender,
		AgeYears:     p.AgeYears,
		AgeMonths:    p.AgeMonths,
		HealthStatus: p.HealthStatus,
		Description:  p.Description,
		Status:       p.Status,
		AdoptionFee:  p.AdoptionFee.StringFixed(2),
		Image:        p.Image,
		DateAdded:    p.DateAdded,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
