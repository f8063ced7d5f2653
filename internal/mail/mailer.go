// Package mail defines the narrow interface the account flows need from an
// email delivery system. Delivery itself is an external concern.
package mail

import (
	"context"
	"log"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
)

// Mailer sends the transactional emails of the account lifecycle.
type Mailer interface {
	SendActivationEmail(ctx context.Context, user domain.User) error
	SendPasswordResetEmail(ctx context.Context, user domain.User) error
}

// LogMailer writes mails to the application log instead of delivering them.
// It stands in wherever no real delivery backend is configured.
type LogMailer struct{}

func (LogMailer) SendActivationEmail(_ context.Context, user domain.User) error {
	log.Printf("[MAIL] activation email for %s <%s>, key=%s", user.Login, user.Email, user.ActivationKey)
	return nil
}

func (LogMailer) SendPasswordResetEmail(_ context.Context, user domain.User) error {
	log.Printf("[MAIL] password reset email for %s <%s>, key=%s", user.Login, user.Email, user.ResetKey)
	return nil
}
