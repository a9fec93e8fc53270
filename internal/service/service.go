package service

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/Dan9191/cohort-tools/internal/auth"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Mailer delivers account notifications
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Service handles business logic
type Service struct {
	store    repository.Store
	hasher   *auth.Hasher
	tokens   *auth.TokenManager
	mailer   Mailer
	validate *validator.Validate
	log      *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
	mailWG    sync.WaitGroup
}

// NewService initializes a new service. mailer may be nil.
func NewService(store repository.Store, hasher *auth.Hasher, tokens *auth.TokenManager, mailer Mailer, log *logrus.Logger) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names in validation messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Service{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		validate: v,
		log:      log,
	}
}

// Wait blocks until in-flight notification emails are done
func (s *Service) Wait() {
	s.mailWG.Wait()
}
