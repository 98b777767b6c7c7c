// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package mailer delivers transactional email over SMTP.

Its single responsibility today is sending confirmation codes during signup.
Delivery is synchronous: a failed send aborts the signup flow so a user is
never left waiting for a code that was silently dropped.

Architecture:

  - Transport: SMTP with mandatory STARTTLS (go-mail dialer).
  - Isolation: Domain services depend on a narrow interface, not on this type.
*/
package mailer

import (
	"context"
	"fmt"
	"time"

	mail "github.com/go-mail/mail/v2"
)

// sendTimeout bounds a single SMTP conversation.
const sendTimeout = 10 * time.Second

// Mailer sends transactional email through a configured SMTP relay.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

// NewMailer builds a Mailer backed by an SMTP dialer.
//
// # Parameters
//   - host, port: SMTP relay address.
//   - username, password: Relay credentials (may be empty for open relays in dev).
//   - from: The sender address stamped on every message.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.StartTLSPolicy = mail.MandatoryStartTLS
	dialer.Timeout = sendTimeout

	return &Mailer{
		dialer: dialer,
		from:   from,
	}
}

// SendConfirmationCode emails the signup confirmation code to a user.
//
// The context is honored on a best-effort basis: the send runs in a goroutine
// and the call returns early if the context expires first.
func (m *Mailer) SendConfirmationCode(ctx context.Context, recipient, username, code string) error {
	message := mail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", "Your Kritika confirmation code")
	message.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n\nExchange it for an access token at /api/v1/auth/token.\n",
		username, code,
	))

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.dialer.DialAndSend(message)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mailer: failed to send confirmation code: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mailer: send cancelled: %w", ctx.Err())
	}
}
