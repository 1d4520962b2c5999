package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/platform/logger"
	"go.uber.org/zap"
)

// Pinger reports whether the document store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger *logger.Logger
}

func NewHealthHandler(store Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: log.Named("HealthHandler")}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		writeError(w, err, msgStoreUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
