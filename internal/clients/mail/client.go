package mail

import (
	"context"
	"errors"
	"fmt"

	"outreach-server/internal/observability"

	"github.com/resendlabs/resend-go"
)

var ErrMissingAPIKey = errors.New("resend API key is required")

// Message is a single transactional email. Text is optional and is sent as
// the plain-text alternative when set.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// ResendClient delivers team notifications through Resend
type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

func NewResendClient(apiKey string, logger *observability.Logger) (*ResendClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &ResendClient{
		client: resend.NewClient(apiKey),
		logger: logger,
	}, nil
}

// Send returns the Resend message id
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_subject", Value: msg.Subject},
	)

	if msg.To == "" || msg.From == "" {
		return "", fmt.Errorf("sender and recipient are required")
	}

	res, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("email sent, resend id %s", res.Id))
	return res.Id, nil
}
