package profiles

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
	r.Post("/signup", signupHandler(svc))
	r.Get("/me", meHandler(svc))

	// Solo administradores: afiliar staff a un refugio
	r.Post("/profiles/{profileID}/shelter", assignShelterHandler(svc))
}

type signupRequest struct {
	Name string `json:"name"`
	Role string `json:"role" enums:"ADOPTER,SHELTER"`
}

type assignShelterRequest struct {
	ShelterID string `json:"shelter_id"`
}

type profileResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Role      authz.Role `json:"role"`
	ShelterID *string    `json:"shelter_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func signupHandler(svc *Service) http.HandlerFunc {
	// El perfil envuelve una identidad ya autenticada; las credenciales
	// las maneja el proveedor de sesión, no este servicio.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Register(r.Context(), claims.UserID, RegisterInput{
			Name: req.Name,
			Role: req.Role,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(p))
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(p))
	}
}

func assignShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req assignShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.AssignShelter(r.Context(), authz.FromClaims(claims), chi.URLParam(r, "profileID"), req.ShelterID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(p))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "already registered", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(p Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Role:      p.Role,
		ShelterID: p.ShelterID,
		CreatedAt: p.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
