package mongodb

import (
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// topRatedPipeline keeps listings rated above the threshold, best first.
func topRatedPipeline(limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: domain.FieldRating, Value: bson.D{{Key: "$gt", Value: domain.TopRatedThreshold}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: domain.FieldName, Value: 1},
			{Key: domain.FieldDescription, Value: 1},
			{Key: domain.FieldRating, Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: domain.FieldRating, Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

// marketPipeline selects one-bedroom listings for a country/market pair.
//
// The $sort stage names averagePrice, which no earlier stage produces, so it
// does not order anything. Kept as is until the intended aggregation (an
// average of price per market) is confirmed.
func marketPipeline(f domain.MarketFilter) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: domain.FieldBedrooms, Value: 1},
			{Key: domain.FieldCountry, Value: f.Country},
			{Key: domain.FieldMarket, Value: f.Market},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: domain.FieldName, Value: 1},
			{Key: domain.FieldDescription, Value: 1},
			{Key: domain.FieldPrice, Value: 1},
			{Key: domain.FieldCountry, Value: 1},
			{Key: domain.FieldMarket, Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "averagePrice", Value: -1}}}},
		{{Key: "$limit", Value: f.Limit}},
	}
}
