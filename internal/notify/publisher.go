package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	derrors "git.home.luguber.info/inful/docpipe/internal/errors"
	"git.home.luguber.info/inful/docpipe/internal/logfields"
)

// ErrNoURL is returned when no NATS server is configured.
var ErrNoURL = errors.New("nats url is required")

// DefaultStream is the JetStream stream capturing run events.
const DefaultStream = "DOCPIPE_RUNS"

// Publisher publishes run events to a JetStream subject.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewPublisher connects to NATS and ensures a stream covers subject.
func NewPublisher(ctx context.Context, url, subject string) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNoURL
	}
	if strings.TrimSpace(subject) == "" {
		return nil, errors.New("nats subject is required")
	}

	conn, err := nats.Connect(url, nats.Name("docpipe"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(streamCtx, jetstream.StreamConfig{
		Name:        DefaultStream,
		Description: "docpipe run events",
		Subjects:    []string{subject},
		MaxAge:      30 * 24 * time.Hour,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}

	slog.Info("NATS publisher initialized", "url", url, "subject", subject)
	return &Publisher{conn: conn, js: js, subject: subject}, nil
}

// Notify publishes the event and waits for the stream acknowledgement.
// Publish failures are returned as retryable notify errors.
func (p *Publisher) Notify(ctx context.Context, event Event) error {
	data, err := event.Encode()
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.js.Publish(pubCtx, p.subject, data); err != nil {
		return derrors.NotifyError(p.subject, err)
	}

	slog.Debug("Published run event", logfields.RunID(event.RunID), slog.String("status", event.Status))
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}
