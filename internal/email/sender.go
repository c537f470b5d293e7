// Package email sends outgoing mail on behalf of the authenticated user.
package email

import (
	"context"
	"strings"

	"github.com/maorhav/concierge/internal/signature"
)

// Message is one outgoing email. Body is expected to already carry the
// enforced signature; senders re-apply the enforcement as a safety net.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Sender transmits a message and returns a provider message ID.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
	From() string
	IsConfigured() bool
}

// resolveSenderName returns the display name used to sign outgoing mail,
// falling back to the local part of the sender's address when no display
// name is on file.
func resolveSenderName(displayName, fromAddress string) string {
	if displayName != "" {
		return displayName
	}
	return localPart(fromAddress)
}

func localPart(address string) string {
	if idx := strings.IndexByte(address, '@'); idx >= 0 {
		return address[:idx]
	}
	return address
}

// finalizeBody applies the strip-then-append signature discipline one last
// time before transmission, so a hallucinated sign-off can never reach the
// wire even if the pipeline stage was bypassed.
func finalizeBody(body, displayName, fromAddress string) string {
	return signature.Enforce(body, resolveSenderName(displayName, fromAddress))
}
