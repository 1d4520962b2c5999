package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"go.uber.org/zap"
)

// ListingService is what the handlers need from the use case layer.
type ListingService interface {
	GetByPropertyType(ctx context.Context, propertyType string) (domain.Document, error)
	CreateListing(ctx context.Context, name, propertyType string) error
	UpdateNotes(ctx context.Context, name, notes string) (int64, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	TopRated(ctx context.Context, limit int64) ([]domain.Document, error)
	ByCountryMarket(ctx context.Context, country, market string, limit int64) ([]domain.Document, error)
}

const (
	msgGetFailed       = "Document does not exist or check query string"
	msgPostFailed      = "There was an error, document could not be posted. Check query string"
	msgUpdateFailed    = "There was an error, document could not be updated. Check query string"
	msgDeleteFailed    = "There was an error, document could not be deleted. Check query string"
	msgAggregateFailed = "There was an error, aggregation could not be run. Check query string"

	msgInserted = "Successfully inserted document to database."
	msgUpdated  = "Successfully updated document."
	msgDeleted  = "Successfully deleted document."
)

// ListingHandler serves the listing routes. All input comes from the query string.
type ListingHandler struct {
	svc    ListingService
	logger *logger.Logger
}

func NewListingHandler(svc ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, logger: log.Named("ListingHandler")}
}

// HandleGetListingByPropertyType responds with the first matching listing's
// name, or null.
func (h *ListingHandler) HandleGetListingByPropertyType(w http.ResponseWriter, r *http.Request) {
	propertyType := r.URL.Query().Get("property_type")

	doc, err := h.svc.GetByPropertyType(r.Context(), propertyType)
	if err != nil {
		h.logger.Error("Failed to get listing by property type", zap.String("property_type", propertyType), zap.Error(err))
		writeError(w, err, msgGetFailed)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *ListingHandler) HandlePostListing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, propertyType := q.Get("name"), q.Get("property_type")

	if err := h.svc.CreateListing(r.Context(), name, propertyType); err != nil {
		h.logger.Error("Failed to insert listing", zap.String("name", name), zap.String("property_type", propertyType), zap.Error(err))
		writeError(w, err, msgPostFailed)
		return
	}
	writeText(w, http.StatusOK, msgInserted)
}

// HandleUpdateListingNotes reports success even when no listing matched.
func (h *ListingHandler) HandleUpdateListingNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, notes := q.Get("name"), q.Get("notes")

	if _, err := h.svc.UpdateNotes(r.Context(), name, notes); err != nil {
		h.logger.Error("Failed to update listing notes", zap.String("name", name), zap.Error(err))
		writeError(w, err, msgUpdateFailed)
		return
	}
	writeText(w, http.StatusOK, msgUpdated)
}

// HandleDeleteListingByName reports success even when no listing matched.
func (h *ListingHandler) HandleDeleteListingByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	if _, err := h.svc.DeleteByName(r.Context(), name); err != nil {
		h.logger.Error("Failed to delete listing", zap.String("name", name), zap.Error(err))
		writeError(w, err, msgDeleteFailed)
		return
	}
	writeText(w, http.StatusOK, msgDeleted)
}

func (h *ListingHandler) HandleGetTopRatedListings(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.logger.Warn("Rejected top rated request", zap.Error(err))
		writeError(w, err, msgAggregateFailed)
		return
	}

	docs, err := h.svc.TopRated(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to aggregate top rated listings", zap.Int64("limit", limit), zap.Error(err))
		writeError(w, err, msgAggregateFailed)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *ListingHandler) HandleGetAvgPriceByCountryMarket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	country, market := q.Get("country"), q.Get("market")

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		h.logger.Warn("Rejected country/market request", zap.Error(err))
		writeError(w, err, msgAggregateFailed)
		return
	}

	docs, err := h.svc.ByCountryMarket(r.Context(), country, market, limit)
	if err != nil {
		h.logger.Error("Failed to aggregate listings by country and market",
			zap.String("country", country), zap.String("market", market), zap.Int64("limit", limit), zap.Error(err))
		writeError(w, err, msgAggregateFailed)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}
