// Package event publishes a small notification every time an Engine
// publishes a new catalog snapshot, so other in-process components (a
// cache warmer, a sibling engine in another process) can react to the
// state change. It is not a delivery mechanism for catalog data itself —
// only a "something changed" signal.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// ReloadEvent is the JSON payload published on every successful reload.
type ReloadEvent struct {
	Engine     string `json:"engine"`
	TokenCount int    `json:"token_count"`
	Checksum   uint32 `json:"checksum"`
	Version    int    `json:"version"`
}

// Notifier publishes ReloadEvent values to a NATS subject.
type Notifier struct {
	conn    *nats.Conn
	subject string
}

const connectTimeout = 5 * time.Second

// NewNotifier connects to url and returns a Notifier that publishes to subject.
func NewNotifier(url, subject string) (*Notifier, error) {
	conn, err := nats.Connect(url, nats.Timeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &Notifier{conn: conn, subject: subject}, nil
}

// Publish marshals evt and publishes it to the configured subject.
func (n *Notifier) Publish(evt ReloadEvent) error {
	if n == nil || n.conn == nil {
		return nil
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal reload event: %w", err)
	}
	return n.conn.Publish(n.subject, data)
}

// Close drains and closes the underlying NATS connection.
func (n *Notifier) Close() error {
	if n == nil || n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
