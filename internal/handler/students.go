package handler

import (
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/gorilla/mux"
)

// ListStudents returns every student
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.ListStudents(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// ListCohortStudents returns the students of one cohort
func (h *Handler) ListCohortStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.ListStudentsByCohort(r.Context(), mux.Vars(r)["cohortId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// GetStudent returns one student
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.svc.GetStudent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// CreateStudent stores a new student
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := decode(w, r, &student); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.CreateStudent(r.Context(), &student); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// ReplaceStudent overwrites a student with the request body
func (h *Handler) ReplaceStudent(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := decode(w, r, &student); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.ReplaceStudent(r.Context(), mux.Vars(r)["id"], &student); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// DeleteStudent removes a student
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteStudent(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
