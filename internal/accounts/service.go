// Package accounts implements the account lifecycle: registration,
// activation, authentication and password reset.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/auth"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/mail"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/repository"
)

// ErrInvalidCredentials covers both unknown logins and wrong passwords, so
// callers cannot probe which logins exist.
var ErrInvalidCredentials = errors.New("invalid login or password")

// ErrNotActivated rejects authentication for accounts that never completed
// registration.
var ErrNotActivated = errors.New("account is not activated")

// resetKeyValidity bounds how long a password reset key stays usable.
const resetKeyValidity = 24 * time.Hour

// RegisterRequest carries the fields of a new registration.
type RegisterRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	LangKey   string `json:"langKey"`
}

// Service implements the account operations.
type Service struct {
	users  repository.UserRepository
	tokens *auth.TokenProvider
	mailer mail.Mailer
	now    func() time.Time
	newKey func() string
}

// NewService creates the account service.
func NewService(users repository.UserRepository, tokens *auth.TokenProvider, mailer mail.Mailer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		now:    time.Now,
		newKey: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Register creates a deactivated account with a fresh activation key and
// mails the key to the new user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	login := domain.NormalizeLogin(req.Login)
	if !domain.ValidLogin(login) {
		return domain.User{}, domain.ValidationError{Field: "login", Message: "is not a valid login"}
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}
	if _, err := s.users.GetByLogin(ctx, login); err == nil {
		return domain.User{}, fmt.Errorf("login %s already in use: %w", login, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}
	email := domain.NormalizeEmail(req.Email)
	if email != "" {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return domain.User{}, fmt.Errorf("email %s already in use: %w", email, domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
	}

	user := domain.User{
		Login:         login,
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         email,
		Activated:     false,
		LangKey:       req.LangKey,
		ActivationKey: s.newKey(),
		Authorities:   []string{domain.RoleUser},
	}
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.mailer.SendActivationEmail(ctx, created); err != nil {
		return domain.User{}, fmt.Errorf("failed to send activation email: %w", err)
	}
	return created, nil
}

// Activate completes a registration identified by its activation key.
func (s *Service) Activate(ctx context.Context, key string) (domain.User, error) {
	user, err := s.users.GetByActivationKey(ctx, key)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.Update(ctx, user.Activate())
}

// Authenticate checks the credentials and issues a signed token for the
// account's principal.
func (s *Service) Authenticate(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetByLogin(ctx, domain.NormalizeLogin(login))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	if !user.Activated {
		return "", ErrNotActivated
	}
	return s.tokens.CreateToken(auth.Principal{Login: user.Login, Authorities: user.Authorities})
}

// GetCurrent returns the account of the acting principal.
func (s *Service) GetCurrent(ctx context.Context) (domain.User, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return s.users.GetByLogin(ctx, principal.Login)
}

// RequestPasswordReset issues a reset key for an activated account and
// mails it. An unknown or deactivated email reports not-found; the HTTP
// boundary decides how much of that to reveal.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.User{}, err
	}
	if !user.Activated {
		return domain.User{}, domain.ErrNotFound
	}
	updated, err := s.users.Update(ctx, user.WithResetKey(s.newKey(), s.now()))
	if err != nil {
		return domain.User{}, err
	}
	if err := s.mailer.SendPasswordResetEmail(ctx, updated); err != nil {
		return domain.User{}, fmt.Errorf("failed to send password reset email: %w", err)
	}
	return updated, nil
}

// FinishPasswordReset sets a new password for the account holding the reset
// key, provided the key has not expired.
func (s *Service) FinishPasswordReset(ctx context.Context, key, newPassword string) error {
	user, err := s.users.GetByResetKey(ctx, key)
	if err != nil {
		return err
	}
	if user.ResetDate == nil || s.now().Sub(*user.ResetDate) > resetKeyValidity {
		return domain.ValidationError{Field: "key", Message: "reset key has expired"}
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, user.WithPasswordHash(hash))
	return err
}
