package infrastructure

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"auth-service/internal/config"
)

type SendGridMailer struct {
	client     *sendgrid.Client
	senderName string
	sender     string
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{
		client:     sendgrid.NewSendClient(cfg.EmailAPIKey),
		senderName: "Account Service",
		sender:     cfg.EmailSender,
	}
}

func (m *SendGridMailer) SendVerificationCode(ctx context.Context, recipientEmail, otp string) error {
	from := mail.NewEmail(m.senderName, m.sender)
	to := mail.NewEmail("", recipientEmail)

	plainTextContent := fmt.Sprintf("Your verification code is: %s", otp)
	htmlContent := fmt.Sprintf("<strong>Your verification code is: %s</strong>", otp)

	message := mail.NewSingleEmail(from, "Verify your email", to, plainTextContent, htmlContent)
	response, err := m.client.Send(message)
	if err != nil {
		log.Println("Failed to send OTP email:", err)
		return err
	}

	log.Println("Email sent. Status Code:", response.StatusCode)
	return nil
}

func (m *SendGridMailer) SendWelcomeEmail(ctx context.Context, recipientEmail, fullName string) error {
	from := mail.NewEmail(m.senderName, m.sender)
	to := mail.NewEmail(fullName, recipientEmail)

	plainTextContent := fmt.Sprintf("Welcome aboard, %s! Your email is verified.", fullName)
	htmlContent := fmt.Sprintf("<strong>Welcome aboard, %s!</strong> Your email is verified.", fullName)

	message := mail.NewSingleEmail(from, "Welcome!", to, plainTextContent, htmlContent)
	_, err := m.client.Send(message)
	return err
}
