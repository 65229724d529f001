package infrastructure

import (
	"context"
	"log"

	"auth-service/internal/config"
)

// Mailer is the notification sink. Delivery failures must never fail the
// originating request; callers dispatch through SendAsync.
type Mailer interface {
	SendVerificationCode(ctx context.Context, recipientEmail, otp string) error
	SendWelcomeEmail(ctx context.Context, recipientEmail, fullName string) error
}

// NewMailer selects the provider from configuration.
func NewMailer(cfg *config.Config) Mailer {
	switch cfg.EmailProvider {
	case "resend":
		return NewResendMailer(cfg)
	default:
		return NewSendGridMailer(cfg)
	}
}

// SendAsync runs send in a detached goroutine and logs its error. The
// request path never waits on it.
func SendAsync(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("Failed to send %s: %v", what, err)
		}
	}()
}
