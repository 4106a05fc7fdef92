package service

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"tutortribe/internal/db"
)

// NotifyService emails booking confirmations through SendGrid. When no API key
// is configured it logs and does nothing; a notification failure never fails
// the booking.
type NotifyService struct {
	apiKey    string
	fromEmail string
	fromName  string
	log       *zap.SugaredLogger
}

func NewNotifyService(apiKey, fromEmail, fromName string, log *zap.SugaredLogger) *NotifyService {
	return &NotifyService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (n *NotifyService) BookingConfirmed(toEmail, code string, slot *db.Slot) {
	if n.apiKey == "" || n.fromEmail == "" {
		n.log.Debugw("sendgrid not configured, skipping booking email", "to", toEmail)
		return
	}

	subject := fmt.Sprintf("Your tutoring session is confirmed - %s", slot.Subject)
	body := fmt.Sprintf(
		"Your booking is confirmed.\n\n"+
			"Subject: %s\n"+
			"Starts: %s\n"+
			"Ends: %s\n"+
			"Confirmation code: %s\n\n"+
			"See you there!",
		slot.Subject,
		slot.StartTime.Format("02 Jan 2006 15:04 MST"),
		slot.EndTime.Format("02 Jan 2006 15:04 MST"),
		code,
	)

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(toEmail, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		n.log.Errorw("failed to send booking email", "to", toEmail, "error", err)
		return
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		n.log.Errorw("sendgrid rejected booking email", "to", toEmail, "status", response.StatusCode, "body", response.Body)
		return
	}
	n.log.Infow("booking email sent", "to", toEmail, "status", response.StatusCode)
}
