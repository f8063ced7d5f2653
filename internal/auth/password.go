package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

// HashPassword checks the raw password against the length policy and hashes
// it with bcrypt.
func HashPassword(password string) (string, error) {
	if !domain.ValidPasswordLength(password) {
		return "", domain.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be between %d and %d characters", domain.PasswordMinLength, domain.PasswordMaxLength),
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the raw password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
