package email

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender sends mail through the Gmail API as the authenticated user.
type GmailSender struct {
	service     *gmail.Service
	fromAddress string
	displayName string
}

// NewGmailSender creates a Gmail-backed sender using an existing OAuth2
// config and token. This reuses the same credentials as Google Calendar.
// The sender address comes from the Gmail profile, never from model output.
func NewGmailSender(ctx context.Context, config *oauth2.Config, token *oauth2.Token, displayName string) (*GmailSender, error) {
	if token == nil {
		return &GmailSender{displayName: displayName}, nil
	}

	httpClient := config.Client(ctx, token)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	profile, err := service.Users.GetProfile("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to load Gmail profile: %w", err)
	}

	return &GmailSender{
		service:     service,
		fromAddress: profile.EmailAddress,
		displayName: displayName,
	}, nil
}

// From returns the authenticated sender address.
func (s *GmailSender) From() string {
	return s.fromAddress
}

// IsConfigured returns true if the sender can transmit mail.
func (s *GmailSender) IsConfigured() bool {
	return s.service != nil && s.fromAddress != ""
}

// Send encodes the message per RFC 2822 and transmits it via the Gmail API.
func (s *GmailSender) Send(ctx context.Context, msg Message) (string, error) {
	if !s.IsConfigured() {
		return "", fmt.Errorf("gmail sender not initialized")
	}
	if msg.Recipient == "" {
		return "", fmt.Errorf("no recipient specified")
	}

	body := finalizeBody(msg.Body, s.displayName, s.fromAddress)
	raw := encodeMessage(s.fromAddress, resolveSenderName(s.displayName, s.fromAddress), msg.Recipient, msg.Subject, body)

	sent, err := s.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// encodeMessage builds the base64url-encoded RFC 2822 message the Gmail API expects.
func encodeMessage(from, fromName, to, subject, body string) string {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		fromName, from, to, subject,
	)
	return base64.URLEncoding.EncodeToString([]byte(headers + body))
}
