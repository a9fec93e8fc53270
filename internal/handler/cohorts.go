package handler

import (
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/gorilla/mux"
)

// ListCohorts returns every cohort
func (h *Handler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	cohorts, err := h.svc.ListCohorts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cohorts)
}

// GetCohort returns one cohort
func (h *Handler) GetCohort(w http.ResponseWriter, r *http.Request) {
	cohort, err := h.svc.GetCohort(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cohort)
}

// CreateCohort stores a new cohort
func (h *Handler) CreateCohort(w http.ResponseWriter, r *http.Request) {
	var cohort models.Cohort
	if err := decode(w, r, &cohort); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.CreateCohort(r.Context(), &cohort); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cohort)
}

// ReplaceCohort overwrites a cohort with the request body
func (h *Handler) ReplaceCohort(w http.ResponseWriter, r *http.Request) {
	var cohort models.Cohort
	if err := decode(w, r, &cohort); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.ReplaceCohort(r.Context(), mux.Vars(r)["id"], &cohort); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cohort)
}

// DeleteCohort removes a cohort
func (h *Handler) DeleteCohort(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCohort(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
