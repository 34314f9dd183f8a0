package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/redis"
)

const healthTimeout = 2 * time.Second

// DBChecker reports database health; *database.DB implements it
type DBChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// HealthHandler reports service liveness plus the state of the snapshot
// and of any configured backing store.
type HealthHandler struct {
	snapshot *source.Snapshot
	db       DBChecker     // nil unless the source is PostgreSQL
	redis    *redis.Client // may be disabled
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(snap *source.Snapshot, db DBChecker, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{snapshot: snap, db: db, redis: rdb}
}

// Check returns 200 when every configured dependency answers, else 503
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	body := map[string]interface{}{
		"status":   "ok",
		"service":  "c360-api",
		"snapshot": h.snapshot.Info(),
	}

	if h.db != nil {
		dbStatus, err := h.db.HealthCheck(ctx)
		body["database"] = dbStatus
		if err != nil {
			status = http.StatusServiceUnavailable
		}
	}

	if h.redis.Enabled() {
		if err := h.redis.Ping(ctx); err != nil {
			body["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			body["redis"] = "ok"
		}
	}

	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	respondJSON(w, status, body)
}
