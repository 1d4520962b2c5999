package domain

// Document is a schema-less listing as stored in (or projected from) the
// listings collection. Nested sub-documents are themselves maps.
type Document map[string]interface{}

// Listing is the part of a listing this service writes.
type Listing struct {
	Name         string `json:"name" bson:"name"`
	PropertyType string `json:"property_type" bson:"property_type"`
}

// Field paths referenced by queries.
const (
	FieldName         = "name"
	FieldPropertyType = "property_type"
	FieldNotes        = "notes"
	FieldDescription  = "description"
	FieldRating       = "review_scores.review_scores_rating"
	FieldBedrooms     = "bedrooms"
	FieldCountry      = "address.country"
	FieldMarket       = "address.market"
	FieldPrice        = "price"
)

// TopRatedThreshold is the exclusive lower bound for top-rated listings.
const TopRatedThreshold = 90

// MarketFilter selects one-bedroom listings in a country/market pair.
type MarketFilter struct {
	Country string
	Market  string
	Limit   int64
}
