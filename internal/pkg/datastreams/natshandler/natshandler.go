// Package natshandler publishes augmentation summaries to a NATS subject.
package natshandler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ohowland/cgc_augment/internal/pkg/report"

	nats "github.com/nats-io/nats.go"
)

const flushTimeout = 5 * time.Second

// Handler owns one NATS connection.
type Handler struct {
	conn    *nats.Conn
	subject string
}

// New connects to server. An empty server uses nats.DefaultURL.
func New(server, subject string) (*Handler, error) {
	if server == "" {
		server = nats.DefaultURL
	}
	nc, err := nats.Connect(server, nats.Name("augment"))
	if err != nil {
		return nil, err
	}
	log.Printf("[NATS client] connected to %s\n", nc.ConnectedUrl())
	return &Handler{conn: nc, subject: subject}, nil
}

// Subject is the subject summaries are published to.
func (h *Handler) Subject() string {
	return h.subject
}

// Publish sends s as JSON and waits for the server to acknowledge it.
func (h *Handler) Publish(s report.Summary) error {
	data, err := payload(s)
	if err != nil {
		return err
	}
	if err := h.conn.Publish(h.subject, data); err != nil {
		return err
	}
	return h.conn.FlushTimeout(flushTimeout)
}

// Close drains and closes the connection.
func (h *Handler) Close() {
	if err := h.conn.Drain(); err != nil {
		log.Printf("[NATS client] drain: %v\n", err)
		h.conn.Close()
	}
}

func payload(s report.Summary) ([]byte, error) {
	return json.Marshal(s)
}
