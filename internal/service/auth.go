package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Dan9191/cohort-tools/internal/models"
	"github.com/Dan9191/cohort-tools/internal/repository"
)

const (
	msgInputsRequired = "All inputs are required."
	msgInvalidEmail   = "Provide a valid email address."
	msgWeakPassword   = "Password must have at least 6 characters and contain at least one number, one lowercase and one uppercase letter."
	msgLongPassword   = "Password must be at most 72 bytes long."
	msgLoginRequired  = "Provide email and password."

	minPasswordLen = 6
	// x/crypto/bcrypt rejects longer input
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// SignupInput is the signup request body
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginInput is the login request body
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func strongPassword(p string) bool {
	if utf8.RuneCountInString(p) < minPasswordLen {
		return false
	}
	var digit, lower, upper bool
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return digit && lower && upper
}

// Signup validates the input, stores a new user with a hashed password
// and returns its public view
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.PublicUser, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, invalid(msgInputsRequired)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, invalid(msgInvalidEmail)
	}
	if !strongPassword(in.Password) {
		return nil, invalid(msgWeakPassword)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, invalid(msgLongPassword)
	}

	_, err := s.store.FindUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: in.Email, Name: in.Name, PasswordHash: hashed}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Infof("User registered: %s", user.Email)
	s.sendWelcome(user.Email, user.Name)

	public := user.Public()
	return &public, nil
}

func (s *Service) sendWelcome(to, name string) {
	if s.mailer == nil {
		return
	}
	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()
		if err := s.mailer.SendWelcome(context.Background(), to, name); err != nil {
			s.log.WithError(err).Warnf("Failed to send welcome email to %s", to)
		}
	}()
}

// Login checks the credentials and returns a signed token
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", invalid(msgLoginRequired)
	}
	if !emailPattern.MatchString(in.Email) {
		return "", invalid(msgInvalidEmail)
	}

	user, err := s.store.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		// Both rejection paths run one bcrypt comparison
		s.hasher.Compare(s.placeholderHash(), in.Password)
		s.log.WithField("email", in.Email).Info("Login rejected: unknown email")
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !s.hasher.Compare(user.PasswordHash, in.Password) {
		s.log.WithField("email", in.Email).Info("Login rejected: wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(models.TokenPayload{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return "", err
	}

	s.log.WithField("user_id", user.ID).Infof("User logged in: %s", user.Email)
	return token, nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(strings.Repeat("x", minPasswordLen))
		if err != nil {
			s.log.WithError(err).Error("Failed to build placeholder hash")
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Authenticate decodes a bearer token into its payload
func (s *Service) Authenticate(token string) (*models.TokenPayload, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		s.log.WithError(err).Debug("Token rejected")
		return nil, ErrUnauthorized
	}
	return payload, nil
}
