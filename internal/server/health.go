package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/assets"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker probes the object storage holding the background image.
type StorageChecker interface {
	Check(ctx context.Context) error
}

type HealthChecker struct {
	db      DBPinger
	storage StorageChecker
	log     *slog.Logger
}

func NewHealthChecker(db DBPinger, storage StorageChecker, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		db:      db,
		storage: storage,
		log:     log,
	}
}

// ServeHTTP reports the database and storage state. Unconfigured storage is
// reported as disabled and does not fail the check, since pages still render
// with the fallback background.
func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if err = h.db.Ping(req.Context()); err != nil {
		status["database"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: DB ping", "error", err)
	} else {
		status["database"] = "ok"
	}

	err = h.storage.Check(req.Context())
	switch {
	case errors.Is(err, assets.ErrNotConfigured):
		status["storage"] = "disabled"
	case err != nil:
		status["storage"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: object storage", "error", err)
	default:
		status["storage"] = "ok"
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
