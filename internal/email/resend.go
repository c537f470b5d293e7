package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends mail via the Resend API. Used as the transport when
// Google auth is not set up but a Resend key is configured (dev setups).
type ResendSender struct {
	client      *resend.Client
	fromAddress string
	displayName string
}

// NewResendSender creates a Resend-backed sender. Returns nil without an API key.
func NewResendSender(apiKey, fromAddress, displayName string) *ResendSender {
	if apiKey == "" {
		return nil
	}
	return &ResendSender{
		client:      resend.NewClient(apiKey),
		fromAddress: fromAddress,
		displayName: displayName,
	}
}

// From returns the configured sender address.
func (s *ResendSender) From() string {
	return s.fromAddress
}

// IsConfigured returns true if the sender has server-side config
func (s *ResendSender) IsConfigured() bool {
	return s.client != nil && s.fromAddress != ""
}

// Send transmits the message via Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if !s.IsConfigured() {
		return "", fmt.Errorf("resend sender not initialized")
	}
	if msg.Recipient == "" {
		return "", fmt.Errorf("no recipient specified")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", resolveSenderName(s.displayName, s.fromAddress), s.fromAddress),
		To:      []string{msg.Recipient},
		Subject: msg.Subject,
		Text:    finalizeBody(msg.Body, s.displayName, s.fromAddress),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	return sent.Id, nil
}
