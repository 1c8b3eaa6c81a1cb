package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"golang.org/x/time/rate"
)

// Sender hands a message to a mail provider. A non-nil sendAt asks the
// provider to deliver at that time.
type Sender interface {
	Send(ctx context.Context, msg Message, sendAt *time.Time) (providerID string, err error)
}

// ResendSender delivers through the Resend API
type ResendSender struct {
	client  *resend.Client
	from    string
	limiter *rate.Limiter
}

// NewResendSender builds a sender limited to perSecond requests.
// perSecond <= 0 disables the limit.
func NewResendSender(apiKey, from string, perSecond float64) *ResendSender {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &ResendSender{
		client:  resend.NewClient(apiKey),
		from:    from,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message, sendAt *time.Time) (string, error) {
	if msg.To == "" {
		return "", &NotificationError{Reason: "recipient address is empty"}
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}
	if sendAt != nil {
		req.ScheduledAt = sendAt.UTC().Format(time.RFC3339)
	}

	resp, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Id == "" {
		return "", errors.New("mail provider returned no message id")
	}
	return resp.Id, nil
}

// Disabled stands in when no mail credentials are configured
type Disabled struct{}

func (d Disabled) Send(context.Context, Message, *time.Time) (string, error) {
	return "", d.Check()
}

// Check reports why nothing can be delivered
func (Disabled) Check() error {
	return &NotificationError{Reason: "notification delivery is not configured"}
}
