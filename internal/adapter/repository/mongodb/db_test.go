package mongodb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/config"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_NotConnected(t *testing.T) {
	c := NewClient(config.MongoConfig{URI: "mongodb://127.0.0.1:1"}, logger.NewNop())

	_, err := c.Collection(config.DatabaseName, config.CollectionName)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Ping(context.Background()), domain.ErrStoreUnavailable)
	assert.NoError(t, c.Disconnect(context.Background()))
}

func TestClient_ConnectUnreachable(t *testing.T) {
	c := NewClient(config.MongoConfig{
		URI:            "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		ConnectTimeout: 2 * time.Second,
	}, logger.NewNop())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Connect(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	}
	_, err := c.Collection(config.DatabaseName, config.CollectionName)
	assert.ErrorIs(t, err, ErrNotConnected)
}
