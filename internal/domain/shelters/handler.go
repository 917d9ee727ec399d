package shelters

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
	// Público (página "about")
	r.Get("/shelters", listSheltersHandler(svc))
	r.Get("/shelters/{shelterID}", getShelterHandler(svc))

	// Solo administradores
	r.Post("/shelters", createShelterHandler(svc))
	r.Delete("/shelters/{shelterID}", deleteShelterHandler(svc))
}

type createShelterRequest struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Province        string `json:"province"`
	PostalCode      string `json:"postal_code"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	SocialMediaPage string `json:"social_media_page"`
	Description     string `json:"description"`
	Logo            string `json:"logo"`
}

type shelterResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Province        string    `json:"province"`
	PostalCode      string    `json:"postal_code"`
	PhoneNumber     string    `json:"phone_number"`
	Email           string    `json:"email"`
	SocialMediaPage string    `json:"social_media_page,omitempty"`
	Description     string    `json:"description"`
	Logo            string    `json:"logo,omitempty"`
	DateRegistered  time.Time `json:"date_registered"`
}

func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toResponse(sh))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			http.Error(w, "shelter not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sh))
	}
}

func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sh, err := svc.Create(r.Context(), actor, CreateInput(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(sh))
	}
}

func deleteShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "shelterID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
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
		http.Error(w, "shelter not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(s Shelter) shelterResponse {
	return shelterResponse{
		ID:              s.ID,
		Name:            s.Name,
		Address:         s.Address,
		City:            s.City,
		Province:        s.Province,
		PostalCode:      s.PostalCode,
		PhoneNumber:     s.PhoneNumber,
		Email:           s.Email,
		SocialMediaPage: s.SocialMediaPage,
		Description:     s.Description,
		Logo:            s.Logo,
		DateRegistered:  s.DateRegistered,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
