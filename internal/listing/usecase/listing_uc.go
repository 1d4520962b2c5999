package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("listing-rest/usecase")

// ListingUsecase runs one store operation per call. It keeps no state
// between calls.
type ListingUsecase struct {
	repo      domain.ListingRepository
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

// NewListingUsecase wires the use case. m may be nil.
func NewListingUsecase(repo domain.ListingRepository, publisher domain.EventPublisher, m *metrics.MetricsManager, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("ListingUsecase"),
	}
}

// GetByPropertyType returns the first matching listing projected to its
// name, or nil when nothing matches.
func (uc *ListingUsecase) GetByPropertyType(ctx context.Context, propertyType string) (domain.Document, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetByPropertyType",
		trace.WithAttributes(attribute.String("listing.property_type", propertyType)))
	defer span.End()

	doc, err := uc.repo.FindOneByPropertyType(ctx, propertyType)
	if err != nil {
		return nil, uc.fail(span, "get_by_property_type", err)
	}
	span.SetAttributes(attribute.Bool("listing.found", doc != nil))
	return doc, nil
}

// CreateListing inserts a listing. Duplicates are allowed.
func (uc *ListingUsecase) CreateListing(ctx context.Context, name, propertyType string) error {
	ctx, span := tracer.Start(ctx, "ListingUsecase.CreateListing",
		trace.WithAttributes(attribute.String("listing.name", name)))
	defer span.End()

	listing := &domain.Listing{Name: name, PropertyType: propertyType}
	if err := uc.repo.Insert(ctx, listing); err != nil {
		return uc.fail(span, "create", err)
	}
	uc.countWrite("create", 1)

	// The insert already succeeded; a lost event must not turn it into an error.
	if err := uc.publisher.PublishListingCreated(ctx, listing); err != nil {
		uc.eventFailed("listing_created", err)
	}
	return nil
}

// UpdateNotes sets notes on the first listing with the given name and
// returns the number of matched documents. Zero matches is not an error.
func (uc *ListingUsecase) UpdateNotes(ctx context.Context, name, notes string) (int64, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.UpdateNotes",
		trace.WithAttributes(attribute.String("listing.name", name)))
	defer span.End()

	matched, err := uc.repo.UpdateNotesByName(ctx, name, notes)
	if err != nil {
		return 0, uc.fail(span, "update_notes", err)
	}
	span.SetAttributes(attribute.Int64("listing.matched", matched))
	uc.countWrite("update_notes", matched)

	// Nothing changed, so there is nothing to announce.
	if matched == 0 {
		uc.logger.Info("No listing matched for notes update", zap.String("name", name))
		return 0, nil
	}
	if err := uc.publisher.PublishNotesUpdated(ctx, name, notes); err != nil {
		uc.eventFailed("notes_updated", err)
	}
	return matched, nil
}

// DeleteByName removes the first listing with the given name and returns
// the number of deleted documents. Zero is not an error.
func (uc *ListingUsecase) DeleteByName(ctx context.Context, name string) (int64, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.DeleteByName",
		trace.WithAttributes(attribute.String("listing.name", name)))
	defer span.End()

	deleted, err := uc.repo.DeleteByName(ctx, name)
	if err != nil {
		return 0, uc.fail(span, "delete", err)
	}
	span.SetAttributes(attribute.Int64("listing.deleted", deleted))
	uc.countWrite("delete", deleted)

	if deleted == 0 {
		uc.logger.Info("No listing matched for delete", zap.String("name", name))
		return 0, nil
	}
	if err := uc.publisher.PublishListingDeleted(ctx, name); err != nil {
		uc.eventFailed("listing_deleted", err)
	}
	return deleted, nil
}

// TopRated returns at most limit listings rated above the threshold, best first.
func (uc *ListingUsecase) TopRated(ctx context.Context, limit int64) ([]domain.Document, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.TopRated",
		trace.WithAttributes(attribute.Int64("query.limit", limit)))
	defer span.End()

	// The HTTP layer already rejects these; other callers get the same rule.
	if limit <= 0 {
		return nil, uc.fail(span, "top_rated", fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput))
	}
	docs, err := uc.repo.TopRated(ctx, limit)
	if err != nil {
		return nil, uc.fail(span, "top_rated", err)
	}
	span.SetAttributes(attribute.Int("query.results", len(docs)))
	return docs, nil
}

// ByCountryMarket returns at most limit one-bedroom listings in the market.
func (uc *ListingUsecase) ByCountryMarket(ctx context.Context, country, market string, limit int64) ([]domain.Document, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.ByCountryMarket",
		trace.WithAttributes(
			attribute.String("listing.country", country),
			attribute.String("listing.market", market),
			attribute.Int64("query.limit", limit),
		))
	defer span.End()

	if limit <= 0 {
		return nil, uc.fail(span, "by_country_market", fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput))
	}
	docs, err := uc.repo.ByCountryMarket(ctx, domain.MarketFilter{Country: country, Market: market, Limit: limit})
	if err != nil {
		return nil, uc.fail(span, "by_country_market", err)
	}
	span.SetAttributes(attribute.Int("query.results", len(docs)))
	return docs, nil
}

// fail records err on the span and the store error counter and hands it back
// unchanged, so callers can still match it with errors.Is.
func (uc *ListingUsecase) fail(span trace.Span, op string, err error) error {
	kind := ErrorKind(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	if uc.metrics != nil {
		uc.metrics.StoreErrorsTotal.WithLabelValues(op, kind).Inc()
	}
	return err
}

func (uc *ListingUsecase) countWrite(op string, affected int64) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ListingWritesTotal.WithLabelValues(op, strconv.FormatBool(affected > 0)).Inc()
}

func (uc *ListingUsecase) eventFailed(event string, err error) {
	uc.logger.Warn("Failed to publish listing event", zap.String("event", event), zap.Error(err))
	if uc.metrics != nil {
		uc.metrics.EventFailuresTotal.WithLabelValues(event).Inc()
	}
}

// Error kinds shared with the HTTP layer.
const (
	KindInvalidRequest   = "invalid_request"
	KindQueryFailed      = "query_failed"
	KindStoreUnavailable = "store_unavailable"
	KindInternal         = "internal"
)

// ErrorKind names the category of err.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return KindInvalidRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, domain.ErrQueryFailed):
		return KindQueryFailed
	default:
		return KindInternal
	}
}
