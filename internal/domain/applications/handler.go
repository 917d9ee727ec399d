package applications

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
	// Solicitante
	r.Post("/pets/{petID}/applications", submitHandler(svc))
	r.Get("/me/applications", myApplicationsHandler(svc))
	r.Get("/applications/{appID}", detailHandler(svc))

	// Dashboard (staff del refugio)
	r.Get("/dashboard/applications", shelterApplicationsHandler(svc))
	r.Post("/applications/{appID}/status", transitionHandler(svc))
	r.Post("/pets/{petID}/applications/approve-all", bulkApproveHandler(svc))
}

type submitRequest struct {
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Reason   string `json:"reason"`
}

type transitionRequest struct {
	Status string `json:"status" enums:"APPROVED,REJECTED,COMPLETED"`
}

type applicationResponse struct {
	ID              string    `json:"id"`
	RequestID       string    `json:"request_id"`
	PetID           *string   `json:"pet_id"`
	ApplicantUserID string    `json:"applicant_user_id,omitempty"`
	FirstName       string    `json:"first_name"`
	MiddleName      string    `json:"middle_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	Province        string    `json:"province"`
	Reason          string    `json:"reason"`
	PetName         string    `json:"pet_name"`
	PetImage        string    `json:"pet_image,omitempty"`
	ShelterID       string    `json:"shelter_id"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type annotatedResponse struct {
	applicationResponse
	StatusInfo StatusInfo `json:"status_info"`
}

type bulkApproveResponse struct {
	Approved int `json:"approved"`
}

// submitHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Crea una solicitud PENDING para la mascota. Requiere autenticación. Notifica al refugio best-effort.
// @Tags applications
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body submitRequest true "Datos de contacto y motivo"
// @Success 201 {object} applicationResponse
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "request id conflict"
// @Router /pets/{petID}/applications [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), p, chi.URLParam(r, "petID"), SubmitInput{
			Phone:    req.Phone,
			Address:  req.Address,
			City:     req.City,
			Province: req.Province,
			Reason:   req.Reason,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

// transitionHandler godoc
// @Summary Cambiar estado de una solicitud
// @Description Solo staff del refugio dueño. Targets válidos según la máquina de estados; APPROVED marca la mascota como ADOPTED.
// @Tags applications
// @Accept json
// @Produce json
// @Param appID path string true "ID de la solicitud"
// @Param payload body transitionRequest true "Estado destino"
// @Success 200 {object} applicationResponse
// @Failure 400 {string} string "target inválido"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "application not found"
// @Router /applications/{appID}/status [post]
func transitionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req transitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Transition(r.Context(), p, chi.URLParam(r, "appID"), req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func bulkApproveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		count, err := svc.BulkApprove(r.Context(), p, chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, bulkApproveResponse{Approved: count})
	}
}

func shelterApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForShelter(r.Context(), p)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func myApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForApplicant(r.Context(), p)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]annotatedResponse, 0, len(items))
		for _, a := range items {
			out = append(out, annotatedResponse{
				applicationResponse: toResponse(a.Application),
				StatusInfo:          a.StatusInfo,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// detailHandler responde 403 explícito (no 404) cuando el actor no es ni
// staff del refugio ni el solicitante.
func detailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), p, chi.URLParam(r, "appID"))
		if err != nil {
			if errors.Is(err, ErrForbidden) {
				http.Error(w, "not authorized to view this application", http.StatusForbidden)
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
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
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		RequestID:       a.RequestID,
		PetID:           a.PetID,
		ApplicantUserID: a.ApplicantUserID,
		FirstName:       a.FirstName,
		MiddleName:      a.MiddleName,
		LastName:        a.LastName,
		Email:           a.Email,
		Phone:           a.Phone,
		Address:         a.Address,
		City:            a.City,
		Province:        a.Province,
		Reason:          a.Reason,
		PetName:         a.PetName,
		PetImage:        a.PetImage,
		ShelterID:       a.ShelterID,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// extraerlo a un helper común recién vale la pena si sigue creciendo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
