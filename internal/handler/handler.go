// Package handler exposes the service over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/service"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// HealthChecker reports the outcome of the latest store probe
type HealthChecker interface {
	Healthy() bool
}

// Handler translates HTTP requests into service calls
type Handler struct {
	svc    *service.Service
	log    *logrus.Logger
	health HealthChecker
}

// NewHandler creates a handler. health may be nil, in which case /healthz always reports ok.
func NewHandler(svc *service.Service, log *logrus.Logger, health HealthChecker) *Handler {
	return &Handler{svc: svc, log: log, health: health}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

var errBadBody = errors.New("invalid request body")

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errBadBody
}

// Health reports store reachability
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil && !h.health.Healthy() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
