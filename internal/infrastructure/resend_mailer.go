package infrastructure

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"auth-service/internal/config"
)

type ResendMailer struct {
	client *resend.Client
	sender string
}

func NewResendMailer(cfg *config.Config) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.EmailAPIKey),
		sender: cfg.EmailSender,
	}
}

func (m *ResendMailer) SendVerificationCode(ctx context.Context, recipientEmail, otp string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{recipientEmail},
		Subject: "Verify your email",
		Text:    fmt.Sprintf("Your verification code is: %s", otp),
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}

func (m *ResendMailer) SendWelcomeEmail(ctx context.Context, recipientEmail, fullName string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{recipientEmail},
		Subject: "Welcome!",
		Text:    fmt.Sprintf("Welcome aboard, %s! Your email is verified.", fullName),
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}
