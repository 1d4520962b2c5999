package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService answers every operation with a fixed value.
type stubService struct{}

func (stubService) GetByPropertyType(context.Context, string) (domain.Document, error) {
	return domain.Document{"name": "A"}, nil
}
func (stubService) CreateListing(context.Context, string, string) error        { return nil }
func (stubService) UpdateNotes(context.Context, string, string) (int64, error) { return 0, nil }
func (stubService) DeleteByName(context.Context, string) (int64, error)        { return 0, nil }
func (stubService) TopRated(context.Context, int64) ([]domain.Document, error) {
	return []domain.Document{}, nil
}
func (stubService) ByCountryMarket(context.Context, string, string, int64) ([]domain.Document, error) {
	return []domain.Document{}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, staticDir string) (*chi.Mux, *metrics.MetricsManager) {
	t.Helper()
	log := logger.NewNop()
	m := metrics.NewMetricsManager("test")
	r := NewRouter(Deps{
		Listings:  handler.NewListingHandler(stubService{}, log),
		Health:    handler.NewHealthHandler(okPinger{}, log),
		Metrics:   m,
		Logger:    log,
		StaticDir: staticDir,
	})
	return r, m
}

func TestRoutes(t *testing.T) {
	r, _ := newTestRouter(t, "")

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/getListingByPropertyType/?property_type=House", http.StatusOK},
		{http.MethodGet, "/getListingByPropertyType?property_type=House", http.StatusOK},
		{http.MethodPost, "/postListing/?name=X&property_type=House", http.StatusOK},
		{http.MethodPut, "/updateListingNotes/?name=X&notes=n", http.StatusOK},
		{http.MethodDelete, "/deleteListingByName/?name=X", http.StatusOK},
		{http.MethodGet, "/getTopRatedListingsWithLimits/?limit=5", http.StatusOK},
		{http.MethodGet, "/getTopRatedListingsWithLimits/?limit=x", http.StatusBadRequest},
		{http.MethodGet, "/getAvgPriceByCountryMarketWithLimits/?country=Australia&market=Sydney&limit=5", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/postListing/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>listings</h1>"), 0o644))
	r, _ := newTestRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	// http.FileServer redirects /index.html to /.
	assert.Equal(t, http.StatusMovedPermanently, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "listings")
}

func TestRouter_RecordsMetricsByRoute(t *testing.T) {
	r, m := newTestRouter(t, "")

	for _, target := range []string{
		"/postListing/?name=X&property_type=House",
		"/postListing?name=Y&property_type=House",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
		require.Equal(t, http.StatusOK, w.Code, target)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/getListingByPropertyType/?property_type=House", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Both slash forms land on one label.
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/postListing", http.MethodPost, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/getListingByPropertyType", http.MethodGet, "200")))
}

func TestRouter_PanicIsLoggedAndCounted(t *testing.T) {
	mux, m := newTestRouter(t, "")
	mux.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/boom", http.MethodGet, "500")))
}
