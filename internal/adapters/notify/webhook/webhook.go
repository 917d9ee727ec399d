package webhook

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-shelter-adoption/internal/platform/httpclient"
	"pet-shelter-adoption/internal/ports/notify"
)

// Notifier postea la notificación como JSON a un relay externo (el que de
// verdad manda el email). El caller trata cualquier error como best-effort.
type Notifier struct {
	client *httpclient.Client
	url    string
}

type payload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func New(client *httpclient.Client, url string) (notify.Notifier, error) {
	if client == nil {
		client = httpclient.New(0)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("webhook: url required")
	}
	return &Notifier{client: client, url: url}, nil
}

func (n *Notifier) Send(ctx context.Context, recipient, subject, body string) error {
	return n.client.DoJSON(ctx, http.MethodPost, n.url, payload{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}, nil)
}
