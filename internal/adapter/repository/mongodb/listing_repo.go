package mongodb

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListingRepository implements domain.ListingRepository on one collection.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(collection *mongo.Collection, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: collection,
		logger:     log.Named("ListingRepository"),
	}
}

// FindOneByPropertyType returns the name of the first listing with the given
// property type, or nil when there is none.
func (r *ListingRepository) FindOneByPropertyType(ctx context.Context, propertyType string) (domain.Document, error) {
	opts := options.FindOne().SetProjection(bson.D{
		{Key: domain.FieldName, Value: 1},
		{Key: "_id", Value: 0},
	})

	var doc bson.M
	err := r.collection.FindOne(ctx, bson.D{{Key: domain.FieldPropertyType, Value: propertyType}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug("No listing for property type", zap.String("property_type", propertyType))
			return nil, nil
		}
		return nil, classify("findOne", err)
	}
	return domain.Document(doc), nil
}

// Insert stores a new listing with exactly the name and property type fields.
func (r *ListingRepository) Insert(ctx context.Context, listing *domain.Listing) error {
	res, err := r.collection.InsertOne(ctx, bson.D{
		{Key: domain.FieldName, Value: listing.Name},
		{Key: domain.FieldPropertyType, Value: listing.PropertyType},
	})
	if err != nil {
		return classify("insertOne", err)
	}
	r.logger.Debug("Listing inserted", zap.Any("inserted_id", res.InsertedID))
	return nil
}

func (r *ListingRepository) UpdateNotesByName(ctx context.Context, name, notes string) (int64, error) {
	// UpdateOne touches only the first document with this name; duplicates
	// are left as they are.
	res, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: domain.FieldName, Value: name}},
		bson.D{{Key: "$set", Value: bson.D{{Key: domain.FieldNotes, Value: notes}}}},
	)
	if err != nil {
		return 0, classify("updateOne", err)
	}
	// Matched, not modified: setting the same notes twice still counts as found.
	return res.MatchedCount, nil
}

func (r *ListingRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: domain.FieldName, Value: name}})
	if err != nil {
		return 0, classify("deleteOne", err)
	}
	return res.DeletedCount, nil
}

func (r *ListingRepository) TopRated(ctx context.Context, limit int64) ([]domain.Document, error) {
	return r.aggregate(ctx, topRatedPipeline(limit))
}

func (r *ListingRepository) ByCountryMarket(ctx context.Context, filter domain.MarketFilter) ([]domain.Document, error) {
	return r.aggregate(ctx, marketPipeline(filter))
}

// aggregate drains the whole cursor before returning.
func (r *ListingRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.Document, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, classify("aggregate", err)
	}
	defer cursor.Close(ctx)

	// bson.M keeps nested sub-documents as maps so they encode as JSON
	// objects. Decimal128 values (price) encode as their decimal string.
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, classify("aggregate cursor", err)
	}

	// Non-nil so an empty result is written as [] and not null.
	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, domain.Document(m))
	}
	return docs, nil
}
