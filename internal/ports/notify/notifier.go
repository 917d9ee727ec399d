package notify

import "context"

// Notifier envía una notificación estilo email a una dirección.
// Contrato best-effort: el caller nunca debe fallar ni revertir nada por un
// error de envío; a lo sumo lo loguea y sigue. Sin reintentos.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
