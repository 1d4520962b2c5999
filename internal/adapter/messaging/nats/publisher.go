package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	ListingCreatedSubject = "listing.created"
	NotesUpdatedSubject   = "listing.notes_updated"
	ListingDeletedSubject = "listing.deleted"
)

var tracer = otel.Tracer("listing-rest/nats-publisher")

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	Drain() error
	IsClosed() bool
	Close()
}

type Publisher struct {
	conn         Conn
	logger       *logger.Logger
	drainTimeout time.Duration
}

// defaultDrainTimeout bounds how long Close waits for in-flight messages.
const defaultDrainTimeout = 5 * time.Second

// NotesUpdatedPayload is the body of a listing.notes_updated message.
type NotesUpdatedPayload struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// DeletedPayload is the body of a listing.deleted message.
type DeletedPayload struct {
	Name string `json:"name"`
}

func NewPublisher(url string, log *logger.Logger, appName string) (*Publisher, error) {
	log.Info("NATS Publisher: connecting...", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error("NATS error", zap.Error(err))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("NATS Publisher: connected", zap.String("url", conn.ConnectedUrl()))

	return NewPublisherWithConn(conn, log), nil
}

// NewPublisherWithConn wraps an existing connection.
func NewPublisherWithConn(conn Conn, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, logger: log.Named("NATSPublisher"), drainTimeout: defaultDrainTimeout}
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(ctx, ListingCreatedSubject, listing)
}

func (p *Publisher) PublishNotesUpdated(ctx context.Context, name, notes string) error {
	return p.publish(ctx, NotesUpdatedSubject, NotesUpdatedPayload{Name: name, Notes: notes})
}

func (p *Publisher) PublishListingDeleted(ctx context.Context, name string) error {
	return p.publish(ctx, ListingDeletedSubject, DeletedPayload{Name: name})
}

func (p *Publisher) publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject)
	defer span.End()
	span.SetAttributes(attribute.String("messaging.destination", subject))

	payload, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal failed")
		return fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = payload
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("NATS Publisher: failed to publish message", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}

	p.logger.Debug("NATS Publisher: message published", zap.String("subject", subject), zap.Int("bytes", len(payload)))
	return nil
}

// Close drains the connection and waits for the drain to finish. Drain is
// asynchronous in nats.go; the connection is force-closed only if it has not
// closed itself within the drain timeout.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("Error draining NATS connection", zap.Error(err))
		p.conn.Close()
		return
	}

	if !p.waitClosed() {
		p.logger.Warn("NATS drain did not finish in time, closing connection", zap.Duration("timeout", p.drainTimeout))
		p.conn.Close()
	}
	p.logger.Info("NATS publisher connection closed")
}

func (p *Publisher) waitClosed() bool {
	deadline := time.NewTimer(p.drainTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	for !p.conn.IsClosed() {
		select {
		case <-deadline.C:
			return p.conn.IsClosed()
		case <-tick.C:
		}
	}
	return true
}

// NopPublisher is used when no NATS server is configured.
type NopPublisher struct{}

func (NopPublisher) PublishListingCreated(context.Context, *domain.Listing) error { return nil }
func (NopPublisher) PublishNotesUpdated(context.Context, string, string) error    { return nil }
func (NopPublisher) PublishListingDeleted(context.Context, string) error          { return nil }
func (NopPublisher) Close()                                                       {}

// HeaderCarrier adapts nats.Header to propagation.TextMapCarrier.
type HeaderCarrier nats.Header

func (c HeaderCarrier) Get(key string) string {
	return nats.Header(c).Get(key)
}

func (c HeaderCarrier) Set(key, value string) {
	nats.Header(c).Set(key, value)
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
