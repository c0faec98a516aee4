package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/textproto"
	"time"

	mail "gopkg.in/mail.v2"

	"mailgenie-backend/models"
)

// Artificial latency for the simulated send path
const simulatedSendDelay = time.Second

// MailService defines the interface for mail dispatch operations
type MailService interface {
	SendSimulated(ctx context.Context, req models.EmailSendRequest) (*models.EmailSendResponse, error)
	SendSMTP(ctx context.Context, req models.EmailSendRequest) (*models.EmailSendResponse, error)
}

// dialFunc opens an authenticated SMTP session
type dialFunc func(host string, port int, username, password string) (mail.SendCloser, error)

// mailService implements MailService
type mailService struct {
	delay time.Duration
	dial  dialFunc
}

// NewMailService creates a new mail service instance
func NewMailService() MailService {
	return &mailService{
		delay: simulatedSendDelay,
		dial:  dialSMTP,
	}
}

// dialSMTP opens a plaintext connection, upgrades it with STARTTLS and
// authenticates with the supplied credentials
func dialSMTP(host string, port int, username, password string) (mail.SendCloser, error) {
	d := mail.NewDialer(host, port, username, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return d.Dial()
}

// SendSimulated marks every recipient as sent after a fixed delay without
// performing real delivery
func (ms *mailService) SendSimulated(ctx context.Context, req models.EmailSendRequest) (*models.EmailSendResponse, error) {
	select {
	case <-time.After(ms.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	sent := make([]string, 0, len(req.Recipients))
	for _, recipient := range req.Recipients {
		sent = append(sent, recipient)
		log.Printf("Email 'sent' to %s", recipient)
	}

	return &models.EmailSendResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent successfully to %d recipient(s)", len(sent)),
		SentTo:  sent,
		SentAt:  time.Now().UTC(),
	}, nil
}

// SendSMTP delivers the message to each recipient over a single authenticated
// SMTP session. A failed recipient is logged and skipped; the remaining
// recipients are still attempted.
func (ms *mailService) SendSMTP(ctx context.Context, req models.EmailSendRequest) (*models.EmailSendResponse, error) {
	sender, err := ms.dial(req.SMTPServer, req.SMTPPort, req.SenderEmail, req.SenderPassword)
	if err != nil {
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %v", ErrSMTPAuth, err)
		}
		return nil, fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer func() {
		if err := sender.Close(); err != nil {
			log.Printf("Failed to close SMTP session: %v", err)
		}
	}()

	// One message, retargeted per recipient; sends on a single session
	// must stay sequential.
	msg := mail.NewMessage()
	msg.SetHeader("From", req.SenderEmail)
	msg.SetHeader("Subject", req.Subject)
	msg.SetBody("text/plain", req.Content)

	sent := make([]string, 0, len(req.Recipients))
	for _, recipient := range req.Recipients {
		msg.SetHeader("To", recipient)
		if err := mail.Send(sender, msg); err != nil {
			log.Printf("Failed to send SMTP email to %s: %v", recipient, err)
			continue
		}
		sent = append(sent, recipient)
		log.Printf("Email sent via SMTP to %s", recipient)
	}

	if len(sent) == 0 {
		return nil, ErrNoRecipientsDelivered
	}

	return &models.EmailSendResponse{
		Success: true,
		Message: fmt.Sprintf("Email sent successfully via SMTP to %d recipient(s)", len(sent)),
		SentTo:  sent,
		SentAt:  time.Now().UTC(),
	}, nil
}

// isAuthError reports whether an SMTP session error is a credential rejection
func isAuthError(err error) bool {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return true
		}
	}
	return false
}
