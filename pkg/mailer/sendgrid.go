package mailer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

// Sender delivers notification email. Delivery failures are never fatal for
// contract creation; callers log and fall back to the copyable signing link.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client  *sendgrid.Client
	from    *sgmail.Email
	timeout time.Duration
}

var _ Sender = (*SendGridSender)(nil)

// NewSendGridSender builds a sender with a bounded per-send timeout.
func NewSendGridSender(apiKey, fromName, fromAddress string, timeout time.Duration) *SendGridSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SendGridSender{
		client:  sendgrid.NewSendClient(apiKey),
		from:    sgmail.NewEmail(fromName, fromAddress),
		timeout: timeout,
	}
}

// Send delivers a single HTML message.
func (s *SendGridSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), "", htmlBody)
	res, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrEmailDelivery.Code, appErrors.ErrEmailDelivery.Status, "sendgrid send failed")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return appErrors.Wrap(fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body),
			appErrors.ErrEmailDelivery.Code, appErrors.ErrEmailDelivery.Status, "sendgrid rejected message")
	}
	return nil
}
