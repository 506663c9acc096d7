package mail

import (
	"context"
	"fmt"
)

// EmailTokenIssuer mints email verification tokens.
type EmailTokenIssuer interface {
	EmailToken(email string) (string, error)
}

// Queue accepts messages for background delivery.
type Queue interface {
	Enqueue(msg Message) error
}

// Confirmer sends account verification emails.
type Confirmer struct {
	tokens EmailTokenIssuer
	queue  Queue
}

// NewConfirmer builds a Confirmer.
func NewConfirmer(tokens EmailTokenIssuer, queue Queue) *Confirmer {
	return &Confirmer{tokens: tokens, queue: queue}
}

// SendConfirmation queues a verification email for email. baseURL is the
// public root of the API.
func (c *Confirmer) SendConfirmation(ctx context.Context, email string, username string, baseURL string) error {
	if c == nil || c.tokens == nil || c.queue == nil {
		return fmt.Errorf("confirmer is not configured")
	}
	token, err := c.tokens.EmailToken(email)
	if err != nil {
		return fmt.Errorf("email token: %w", err)
	}
	body, err := Render(ctx, ConfirmationEmail(username, baseURL, token))
	if err != nil {
		return err
	}
	return c.queue.Enqueue(Message{
		To:      email,
		Subject: ConfirmationSubject,
		HTML:    body,
	})
}
