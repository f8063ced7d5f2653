package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// Account identities used where no authenticated principal exists.
const (
	SystemAccount = "system"
	AnonymousUser = "anonymoususer"
)

// Password policy applies to the raw password, before hashing.
const (
	PasswordMinLength = 4
	PasswordMaxLength = 100
)

// Authorities granted to accounts. Role membership is checked at the HTTP
// boundary; the core only ever enforces ownership scoping.
const (
	RoleUser        = "ROLE_USER"
	RoleAdmin       = "ROLE_ADMIN"
	RoleGate        = "ROLE_GATE"
	RoleParkingSpot = "ROLE_PARKING_SPOT"
)

var loginPattern = regexp.MustCompile(`^[_.@A-Za-z0-9-]+$`)

// User is an authenticated account. At most one parking spot references an
// account through its unique ownership column.
type User struct {
	ID            int64      `json:"id"`
	Login         string     `json:"login"`
	PasswordHash  string     `json:"-"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	Email         string     `json:"email,omitempty"`
	Activated     bool       `json:"activated"`
	LangKey       string     `json:"langKey,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	ActivationKey string     `json:"-"`
	ResetKey      string     `json:"-"`
	ResetDate     *time.Time `json:"-"`
	Authorities   []string   `json:"authorities"`

	Audit AuditFields `json:"-"`
}

// NormalizeLogin lowercases a login before it is stored or compared.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// NormalizeEmail lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidLogin reports whether a login satisfies the accepted pattern.
func ValidLogin(login string) bool {
	return login != "" && len(login) <= 50 && loginPattern.MatchString(login)
}

// ValidPasswordLength checks the raw password against the policy bounds.
func ValidPasswordLength(password string) bool {
	return len(password) >= PasswordMinLength && len(password) <= PasswordMaxLength
}

// HasAuthority reports whether the user carries the given authority.
func (u User) HasAuthority(authority string) bool {
	return slices.Contains(u.Authorities, authority)
}

// Activate returns the user with registration completed and the one-time
// activation key cleared.
func (u User) Activate() User {
	u.Activated = true
	u.ActivationKey = ""
	return u
}

// WithResetKey returns the user carrying a fresh password reset key.
func (u User) WithResetKey(key string, at time.Time) User {
	u.ResetKey = key
	u.ResetDate = &at
	return u
}

// WithPasswordHash returns the user with a new password hash and any pending
// reset state cleared.
func (u User) WithPasswordHash(hash string) User {
	u.PasswordHash = hash
	u.ResetKey = ""
	u.ResetDate = nil
	return u
}

// Validate checks the invariants an account must satisfy before it reaches
// the store.
func (u User) Validate() error {
	var errs ValidationErrors
	if !ValidLogin(u.Login) {
		errs = append(errs, ValidationError{Field: "login", Message: "must match " + loginPattern.String() + " and be at most 50 characters"})
	}
	if u.Email != "" && (len(u.Email) < 5 || len(u.Email) > 254 || !strings.Contains(u.Email, "@")) {
		errs = append(errs, ValidationError{Field: "email", Message: "is not a valid email address"})
	}
	return errs.ErrOrNil()
}
