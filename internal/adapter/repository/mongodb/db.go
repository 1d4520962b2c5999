package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/config"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNotConnected is returned by Collection and Ping before Connect succeeded.
var ErrNotConnected = fmt.Errorf("%w: client is not connected", domain.ErrStoreUnavailable)

// Client is the process-wide handle to the document store. Connect may be
// called any number of times from any goroutine; only the first successful
// attempt dials.
type Client struct {
	cfg    config.MongoConfig
	logger *logger.Logger

	mu     sync.Mutex
	client *mongo.Client
}

func NewClient(cfg config.MongoConfig, log *logger.Logger) *Client {
	return &Client{cfg: cfg, logger: log.Named("MongoClient")}
}

// Connect dials and pings the store. A failed attempt leaves the handle
// unconnected so a later call can try again.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}

	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(c.cfg.ConnectionURI())
	if c.cfg.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(c.cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		c.logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return fmt.Errorf("%w: connect: %v", domain.ErrStoreUnavailable, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		c.logger.Error("Failed to ping MongoDB", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: ping: %v", domain.ErrStoreUnavailable, err)
	}

	c.client = client
	c.logger.Info("Connected to MongoDB")
	return nil
}

// Collection resolves a database/collection pair on the connected client.
func (c *Client) Collection(dbName, collectionName string) (*mongo.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil, ErrNotConnected
	}
	return c.client.Database(dbName).Collection(collectionName), nil
}

// Ping checks that the store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return ErrNotConnected
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return classify("ping", err)
	}
	return nil
}

// Disconnect closes the underlying client. It is a no-op when not connected.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	if err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("failed to disconnect from mongo: %w", err)
	}
	return nil
}
