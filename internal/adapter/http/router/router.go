package router

import (
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators NewRouter wires together.
type Deps struct {
	Listings  *handler.ListingHandler
	Health    *handler.HealthHandler
	Metrics   *metrics.MetricsManager
	Logger    *logger.Logger
	StaticDir string
}

// NewRouter builds the HTTP surface: listing routes, /health and static files.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	// Innermost, so a recovered panic still shows up as a 500 in the
	// request log, the metrics and the span.
	r.Use(chimw.Recoverer)

	SetupListingRoutes(r, d.Listings)
	r.Get("/health", d.Health.HandleHealth)

	if d.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(d.StaticDir)))
	}
	return r
}

// SetupListingRoutes registers the listing endpoints. Each path answers with
// and without the trailing slash.
func SetupListingRoutes(r chi.Router, h *handler.ListingHandler) {
	both(r.Get, "/getListingByPropertyType/", h.HandleGetListingByPropertyType)
	both(r.Post, "/postListing/", h.HandlePostListing)
	both(r.Put, "/updateListingNotes/", h.HandleUpdateListingNotes)
	both(r.Delete, "/deleteListingByName/", h.HandleDeleteListingByName)
	both(r.Get, "/getTopRatedListingsWithLimits/", h.HandleGetTopRatedListings)
	both(r.Get, "/getAvgPriceByCountryMarketWithLimits/", h.HandleGetAvgPriceByCountryMarket)
}

func both(register func(string, http.HandlerFunc), pattern string, fn http.HandlerFunc) {
	register(pattern, fn)
	register(strings.TrimSuffix(pattern, "/"), fn)
}
