package console

import (
	"context"

	"pet-shelter-adoption/internal/platform/logger"
	"pet-shelter-adoption/internal/ports/notify"
)

// Notifier "envía" escribiendo al log, como el backend de email de consola
// que se usa en desarrollo. Nunca falla.
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) notify.Notifier {
	if log == nil {
		log = logger.Nop{}
	}
	return &Notifier{log: log}
}

func (n *Notifier) Send(ctx context.Context, recipient, subject, body string) error {
	n.log.Info("notification", map[string]any{
		"recipient": recipient,
		"subject":   subject,
		"body":      body,
	})
	return nil
}
