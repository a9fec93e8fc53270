package handler

import (
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/middleware"
	"github.com/Dan9191/cohort-tools/internal/service"
)

// Signup handles user registration
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.SignupInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.svc.Signup(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authToken": token})
}

// Verify echoes the payload of a valid token
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	payload, ok := middleware.PayloadFromContext(r.Context())
	if !ok {
		h.writeError(w, r, service.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loggedIn": true, "payload": payload})
}
