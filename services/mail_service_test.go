package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mail "gopkg.in/mail.v2"

	"mailgenie-backend/models"
)

// fakeSMTPSender stands in for an open SMTP session
type fakeSMTPSender struct {
	failFor map[string]bool
	sentTo  []string
	closed  bool
}

func (f *fakeSMTPSender) Send(from string, to []string, msg io.WriterTo) error {
	for _, recipient := range to {
		if f.failFor[recipient] {
			return &textproto.Error{Code: 550, Msg: "mailbox unavailable"}
		}
	}
	f.sentTo = append(f.sentTo, to...)
	return nil
}

func (f *fakeSMTPSender) Close() error {
	f.closed = true
	return nil
}

func newTestMailService(sender mail.SendCloser, dialErr error) *mailService {
	return &mailService{
		delay: time.Millisecond,
		dial: func(host string, port int, username, password string) (mail.SendCloser, error) {
			if dialErr != nil {
				return nil, dialErr
			}
			return sender, nil
		},
	}
}

func sendRequest(recipients ...string) models.EmailSendRequest {
	return models.EmailSendRequest{
		Recipients:     recipients,
		Subject:        "Test Subject",
		Content:        "Test Body",
		SenderEmail:    "me@x.com",
		SenderPassword: "app-password",
		SMTPServer:     "smtp.gmail.com",
		SMTPPort:       587,
	}
}

func TestSendSimulated_AllRecipientsInOrder(t *testing.T) {
	service := newTestMailService(nil, nil)

	resp, err := service.SendSimulated(context.Background(), sendRequest("a@x.com", "b@x.com"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, resp.SentTo)
	assert.Equal(t, "Email sent successfully to 2 recipient(s)", resp.Message)
	assert.False(t, resp.SentAt.IsZero())
}

func TestSendSimulated_ContextCancelled(t *testing.T) {
	service := newTestMailService(nil, nil)
	service.delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.SendSimulated(ctx, sendRequest("a@x.com"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendSMTP_AllRecipientsSucceed(t *testing.T) {
	sender := &fakeSMTPSender{}
	service := newTestMailService(sender, nil)

	resp, err := service.SendSMTP(context.Background(), sendRequest("a@x.com", "b@x.com"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, resp.SentTo)
	assert.Equal(t, "Email sent successfully via SMTP to 2 recipient(s)", resp.Message)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, sender.sentTo)
	assert.True(t, sender.closed)
}

func TestSendSMTP_PartialFailure(t *testing.T) {
	// 2 of 3 recipients fail; the loop still attempts all of them
	sender := &fakeSMTPSender{failFor: map[string]bool{"a@x.com": true, "c@x.com": true}}
	service := newTestMailService(sender, nil)

	resp, err := service.SendSMTP(context.Background(), sendRequest("a@x.com", "b@x.com", "c@x.com"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"b@x.com"}, resp.SentTo)
	assert.Equal(t, "Email sent successfully via SMTP to 1 recipient(s)", resp.Message)
	assert.True(t, sender.closed)
}

func TestSendSMTP_AllRecipientsFail(t *testing.T) {
	sender := &fakeSMTPSender{failFor: map[string]bool{"a@x.com": true, "b@x.com": true, "c@x.com": true}}
	service := newTestMailService(sender, nil)

	_, err := service.SendSMTP(context.Background(), sendRequest("a@x.com", "b@x.com", "c@x.com"))

	assert.ErrorIs(t, err, ErrNoRecipientsDelivered)
	assert.True(t, sender.closed)
}

func TestSendSMTP_AuthFailure(t *testing.T) {
	authErr := &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}
	service := newTestMailService(nil, authErr)

	_, err := service.SendSMTP(context.Background(), sendRequest("a@x.com"))

	assert.ErrorIs(t, err, ErrSMTPAuth)
}

func TestSendSMTP_DialFailure(t *testing.T) {
	service := newTestMailService(nil, fmt.Errorf("dial tcp: connection refused"))

	_, err := service.SendSMTP(context.Background(), sendRequest("a@x.com"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSMTPAuth))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, isAuthError(&textproto.Error{Code: 535, Msg: "bad credentials"}))
	assert.True(t, isAuthError(&textproto.Error{Code: 530, Msg: "auth required"}))
	assert.True(t, isAuthError(fmt.Errorf("dial: %w", &textproto.Error{Code: 534, Msg: "mechanism too weak"})))
	assert.False(t, isAuthError(&textproto.Error{Code: 550, Msg: "mailbox unavailable"}))
	assert.False(t, isAuthError(errors.New("connection reset")))
}
