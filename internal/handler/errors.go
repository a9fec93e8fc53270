package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/middleware"
	"github.com/Dan9191/cohort-tools/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	msgUserExists         = "User already exists."
	msgInvalidCredentials = "Unable to authenticate the user"
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "Internal server error"
)

// writeError maps a service error onto its status code and body
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *service.ValidationError
		notFound *service.NotFoundError
		conflict *service.ConflictError
	)
	switch {
	case errors.Is(err, errBadBody):
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrUserExists):
		writeMessage(w, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, middleware.UnauthorizedMessage)
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		writeMessage(w, http.StatusConflict, conflict.Message)
	default:
		h.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": w.Header().Get(middleware.RequestIDHeader),
			"error":      err,
		}).Error("Request failed")
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}
