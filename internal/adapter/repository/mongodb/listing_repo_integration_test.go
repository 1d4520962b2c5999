//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/config"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	testClient *Client
	testColl   *mongo.Collection
	testRepo   *ListingRepository
)

// TestMain starts a throwaway MongoDB and points the repository at the
// listings collection inside it.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}

	uri := fmt.Sprintf("mongodb://root:password@%s/?authSource=admin", resource.GetHostPort("27017/tcp"))
	testClient = NewClient(config.MongoConfig{URI: uri, ConnectTimeout: 5 * time.Second}, logger.NewNop())

	if err := pool.Retry(func() error {
		return testClient.Connect(context.Background())
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}

	testColl, err = testClient.Collection(config.DatabaseName, config.CollectionName)
	if err != nil {
		log.Fatalf("Could not open collection: %s", err)
	}
	testRepo = NewListingRepository(testColl, logger.NewNop())

	code := m.Run()

	_ = testClient.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func resetCollection(t *testing.T, docs ...interface{}) {
	t.Helper()
	ctx := context.Background()
	_, err := testColl.DeleteMany(ctx, bson.D{})
	require.NoError(t, err)
	if len(docs) > 0 {
		_, err = testColl.InsertMany(ctx, docs)
		require.NoError(t, err)
	}
}

func TestIntegration_InsertThenFind(t *testing.T) {
	resetCollection(t)
	ctx := context.Background()

	require.NoError(t, testRepo.Insert(ctx, &domain.Listing{Name: "X", PropertyType: "Yurt"}))

	doc, err := testRepo.FindOneByPropertyType(ctx, "Yurt")
	require.NoError(t, err)
	assert.Equal(t, domain.Document{"name": "X"}, doc)

	doc, err = testRepo.FindOneByPropertyType(ctx, "Castle")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestIntegration_UpdateNotes(t *testing.T) {
	resetCollection(t, bson.M{"name": "X", "property_type": "House"})
	ctx := context.Background()

	matched, err := testRepo.UpdateNotesByName(ctx, "X", "quiet")
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	var got bson.M
	require.NoError(t, testColl.FindOne(ctx, bson.M{"name": "X"}).Decode(&got))
	assert.Equal(t, "quiet", got["notes"])

	matched, err = testRepo.UpdateNotesByName(ctx, "missing", "quiet")
	require.NoError(t, err)
	assert.EqualValues(t, 0, matched)
}

func TestIntegration_DeleteRemovesOnlyFirstMatch(t *testing.T) {
	resetCollection(t,
		bson.M{"name": "dup", "property_type": "House"},
		bson.M{"name": "dup", "property_type": "Loft"},
	)
	ctx := context.Background()

	deleted, err := testRepo.DeleteByName(ctx, "dup")
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	n, err := testColl.CountDocuments(ctx, bson.M{"name": "dup"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	deleted, err = testRepo.DeleteByName(ctx, "missing")
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}

func TestIntegration_TopRated(t *testing.T) {
	resetCollection(t,
		bson.M{"name": "a", "description": "d", "review_scores": bson.M{"review_scores_rating": 95}},
		bson.M{"name": "b", "description": "d", "review_scores": bson.M{"review_scores_rating": 99}},
		bson.M{"name": "c", "description": "d", "review_scores": bson.M{"review_scores_rating": 90}},
		bson.M{"name": "d", "description": "d", "review_scores": bson.M{"review_scores_rating": 97}},
	)
	ctx := context.Background()

	docs, err := testRepo.TopRated(ctx, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0]["name"])
	assert.Equal(t, "d", docs[1]["name"])
	for _, d := range docs {
		assert.NotContains(t, d, "_id")
	}

	docs, err = testRepo.TopRated(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 3, "a rating of exactly 90 is excluded")
}

func TestIntegration_ByCountryMarket(t *testing.T) {
	sydney := func(name string, bedrooms int) bson.M {
		return bson.M{
			"name": name, "description": "d", "price": 100, "bedrooms": bedrooms,
			"address": bson.M{"country": "Australia", "market": "Sydney", "street": "s"},
		}
	}
	resetCollection(t,
		sydney("one", 1),
		sydney("two", 1),
		sydney("big", 3),
		bson.M{"name": "porto", "bedrooms": 1, "address": bson.M{"country": "Portugal", "market": "Porto"}},
	)
	ctx := context.Background()

	docs, err := testRepo.ByCountryMarket(ctx, domain.MarketFilter{Country: "Australia", Market: "Sydney", Limit: 10})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.NotContains(t, d, "_id")
		assert.NotContains(t, d, "bedrooms")
		assert.Equal(t, bson.M{"country": "Australia", "market": "Sydney"}, d["address"])
	}

	docs, err = testRepo.ByCountryMarket(ctx, domain.MarketFilter{Country: "Australia", Market: "Sydney", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = testRepo.ByCountryMarket(ctx, domain.MarketFilter{Country: "Nowhere", Market: "Sydney", Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}
