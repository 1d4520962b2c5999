package mongodb

import (
	"testing"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageNames(t *testing.T, stages []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		require.Len(t, s, 1)
		names = append(names, s[0].Key)
	}
	return names
}

func TestTopRatedPipeline(t *testing.T) {
	p := topRatedPipeline(5)

	assert.Equal(t, []string{"$match", "$project", "$sort", "$limit"}, stageNames(t, p))

	match := p[0][0].Value.(bson.D)
	assert.Equal(t, domain.FieldRating, match[0].Key)
	assert.Equal(t, bson.D{{Key: "$gt", Value: 90}}, match[0].Value)

	project := p[1][0].Value.(bson.D)
	assert.Equal(t, bson.D{
		{Key: "_id", Value: 0},
		{Key: "name", Value: 1},
		{Key: "description", Value: 1},
		{Key: "review_scores.review_scores_rating", Value: 1},
	}, project)

	assert.Equal(t, bson.D{{Key: domain.FieldRating, Value: -1}}, p[2][0].Value)
	assert.Equal(t, int64(5), p[3][0].Value)
}

func TestMarketPipeline(t *testing.T) {
	p := marketPipeline(domain.MarketFilter{Country: "Australia", Market: "Sydney", Limit: 3})

	assert.Equal(t, []string{"$match", "$project", "$sort", "$limit"}, stageNames(t, p))
	assert.Equal(t, bson.D{
		{Key: "bedrooms", Value: 1},
		{Key: "address.country", Value: "Australia"},
		{Key: "address.market", Value: "Sydney"},
	}, p[0][0].Value)

	project := p[1][0].Value.(bson.D)
	keys := make([]string, 0, len(project))
	for _, e := range project {
		keys = append(keys, e.Key)
	}
	assert.NotContains(t, keys, "averagePrice")
	assert.Contains(t, keys, "price")

	assert.Equal(t, bson.D{{Key: "averagePrice", Value: -1}}, p[2][0].Value)
	assert.Equal(t, int64(3), p[3][0].Value)
}
