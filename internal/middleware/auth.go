// Package middleware holds the HTTP middleware chain: bearer-token access
// control, request logging, Prometheus metrics and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// UnauthorizedMessage is the body of every 401 response
const UnauthorizedMessage = "token not provided or not valid"

type contextKey string

const payloadKey contextKey = "token-payload"

// Authenticator decodes a bearer token into its payload
type Authenticator interface {
	Authenticate(token string) (*models.TokenPayload, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the decoded payload in the request context
func AuthMiddleware(a Authenticator, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				log.WithFields(logrus.Fields{"path": r.URL.Path, "error": err}).Warn("Authorization header invalid")
				writeJSON(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}
			payload, err := a.Authenticate(token)
			if err != nil {
				log.WithFields(logrus.Fields{"path": r.URL.Path, "error": err}).Warn("Token validation failed")
				writeJSON(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// WithPayload returns ctx carrying payload
func WithPayload(ctx context.Context, payload *models.TokenPayload) context.Context {
	return context.WithValue(ctx, payloadKey, payload)
}

// PayloadFromContext returns the payload stored by AuthMiddleware
func PayloadFromContext(ctx context.Context) (*models.TokenPayload, bool) {
	payload, ok := ctx.Value(payloadKey).(*models.TokenPayload)
	return payload, ok && payload != nil
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
