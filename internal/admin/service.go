package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email/password pair. The
// message is deliberately identical for both cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages admin accounts and credential checks.
type Service struct {
	repo Repository
}

// NewService creates a new admin service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Seed creates the bootstrap admin account if no account exists yet. It is a
// no-op when the table is already populated or when credentials are unset.
func (s *Service) Seed(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, Admin{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// Authenticate verifies credentials against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (Admin, error) {
	a, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, err
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(creds.Password)); err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return a, nil
}
