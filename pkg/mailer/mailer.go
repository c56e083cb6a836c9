// Package mailer sends transactional email through Resend.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a single outbound email.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	ReplyTo     string
	Attachments []Attachment
}

// Mailer delivers messages via the Resend API.
type Mailer struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

// New builds a mailer for apiKey. Use NewWithClient to point at a different API host.
func New(apiKey, from string, logger zerolog.Logger) (*Mailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key must be provided")
	}
	return NewWithClient(resend.NewClient(apiKey), from, logger), nil
}

// NewWithClient wraps an existing Resend client.
func NewWithClient(client *resend.Client, from string, logger zerolog.Logger) *Mailer {
	return &Mailer{
		client: client,
		from:   from,
		logger: logger.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers msg and returns the provider's message id.
func (m *Mailer) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("message has no recipients")
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	for _, attachment := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename:    attachment.Filename,
			Content:     attachment.Content,
			ContentType: attachment.ContentType,
		})
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			m.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return "", fmt.Errorf("email rate limit exceeded: %w", err)
		}
		return "", fmt.Errorf("resend API error: %w", err)
	}

	m.logger.Info().Str("email_id", sent.Id).Strs("to", msg.To).Int("attachments", len(msg.Attachments)).Msg("email sent via Resend")
	return sent.Id, nil
}
