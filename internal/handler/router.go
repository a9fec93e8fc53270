package handler

import (
	"net/http"

	"github.com/Dan9191/cohort-tools/internal/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// RouterOptions carries the optional pieces of the middleware chain
type RouterOptions struct {
	CORSOrigins    []string
	Limiter        middleware.RateLimiter
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
}

// NewRouter wires every route of the API
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.Use(middleware.RequestLogger(h.log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	requireAuth := middleware.AuthMiddleware(h.svc, h.log)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}

	// Auth routes
	signupLimit := middleware.RateLimit(opts.Limiter, "signup", middleware.SignupLimit, middleware.LimitWindow, opts.Metrics, h.log)
	loginLimit := middleware.RateLimit(opts.Limiter, "login", middleware.LoginLimit, middleware.LimitWindow, opts.Metrics, h.log)
	r.Handle("/auth/signup", signupLimit(http.HandlerFunc(h.Signup))).Methods(http.MethodPost)
	r.Handle("/auth/login", loginLimit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	r.Handle("/auth/verify", requireAuth(http.HandlerFunc(h.Verify))).Methods(http.MethodGet)

	// Protected user routes
	users := r.PathPrefix("/api/users").Subrouter()
	users.Use(requireAuth)
	users.HandleFunc("/{id}", h.GetUser).Methods(http.MethodGet)

	// Cohort routes
	r.HandleFunc("/api/cohorts", h.ListCohorts).Methods(http.MethodGet)
	r.HandleFunc("/api/cohorts", h.CreateCohort).Methods(http.MethodPost)
	r.HandleFunc("/api/cohorts/{id}", h.GetCohort).Methods(http.MethodGet)
	r.HandleFunc("/api/cohorts/{id}", h.ReplaceCohort).Methods(http.MethodPut)
	r.HandleFunc("/api/cohorts/{id}", h.DeleteCohort).Methods(http.MethodDelete)

	// Student routes
	r.HandleFunc("/api/students", h.ListStudents).Methods(http.MethodGet)
	r.HandleFunc("/api/students", h.CreateStudent).Methods(http.MethodPost)
	r.HandleFunc("/api/students/cohort/{cohortId}", h.ListCohortStudents).Methods(http.MethodGet)
	r.HandleFunc("/api/students/{id}", h.GetStudent).Methods(http.MethodGet)
	r.HandleFunc("/api/students/{id}", h.ReplaceStudent).Methods(http.MethodPut)
	r.HandleFunc("/api/students/{id}", h.DeleteStudent).Methods(http.MethodDelete)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	})(r)
}
