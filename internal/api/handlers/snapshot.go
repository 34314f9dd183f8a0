package handlers

import (
	"net/http"

	"github.com/wonny/c360/internal/dashconfig"
	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/logger"
)

// SnapshotHandler exposes snapshot status, manual reload and the active
// dashboard config.
type SnapshotHandler struct {
	snapshot *source.Snapshot
	config   *dashconfig.Config
	stamp    dashconfig.Stamp
	logger   *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snap *source.Snapshot, cfg *dashconfig.Config, stamp dashconfig.Stamp, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshot: snap,
		config:   cfg,
		stamp:    stamp,
		logger:   log,
	}
}

// GetInfo returns metadata of the held snapshot
// GET /api/snapshot
func (h *SnapshotHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.snapshot.Info(),
		"loaded":  h.snapshot.Loaded(),
	})
}

// Reload re-reads the dataset from its origin, bypassing any cache.
// On failure the previous snapshot stays in place.
// POST /api/snapshot/reload
func (h *SnapshotHandler) Reload(w http.ResponseWriter, r *http.Request) {
	info, err := h.snapshot.Reload(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Manual snapshot reload failed")
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "Failed to reload snapshot",
			"data":  info,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    info,
	})
}

// GetConfig returns the active dashboard config and its stamp
// GET /api/config
func (h *SnapshotHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.config,
		"stamp":   h.stamp,
	})
}
