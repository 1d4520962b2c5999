package domain

import "context"

// ListingRepository is the store-side contract for the listings collection.
// Update and delete act on the first document matching the name and report
// how many documents were affected; zero is not an error.
type ListingRepository interface {
	FindOneByPropertyType(ctx context.Context, propertyType string) (Document, error)
	Insert(ctx context.Context, listing *Listing) error
	UpdateNotesByName(ctx context.Context, name, notes string) (matched int64, err error)
	DeleteByName(ctx context.Context, name string) (deleted int64, err error)
	TopRated(ctx context.Context, limit int64) ([]Document, error)
	ByCountryMarket(ctx context.Context, filter MarketFilter) ([]Document, error)
}

// EventPublisher announces listing changes.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, listing *Listing) error
	PublishNotesUpdated(ctx context.Context, name, notes string) error
	PublishListingDeleted(ctx context.Context, name string) error
}
