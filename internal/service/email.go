package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"scootrapid-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendRentalReceipt(ctx context.Context, email, name, rentalCode string, durationMinutes int32, totalCost float64) error {
	subject := fmt.Sprintf("Your ride receipt — %s", rentalCode)
	body := fmt.Sprintf(
		"Hello %s,\n\nThanks for riding with ScootRapid.\n\nRental: %s\nDuration: %d minutes\nTotal: %.2f CHF\n\nSee you on the next ride,\nThe ScootRapid Team",
		name, rentalCode, durationMinutes, totalCost)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, rentalCode string, startedAt time.Time) error {
	subject := fmt.Sprintf("Your rental %s is still running", rentalCode)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental %s started at %s and is still open. Please end the ride in the app to stop the per-minute charge.\n\nThe ScootRapid Team",
		name, rentalCode, startedAt.Format(time.RFC1123))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendMaintenanceAlert(ctx context.Context, providerEmail, providerName, identifier string, batteryLevel int32) error {
	subject := fmt.Sprintf("Scooter %s needs maintenance", identifier)
	body := fmt.Sprintf(
		"Hello %s,\n\nScooter %s is due for service (battery at %d%%). Please schedule a maintenance visit.\n\nThe ScootRapid Team",
		providerName, identifier, batteryLevel)
	return s.send(providerEmail, providerName, subject, body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}
