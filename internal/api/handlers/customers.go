package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/dashconfig"
	"github.com/wonny/c360/internal/selection"
	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/logger"
)

// CustomerHandler serves the customer list, profiles and portfolio metrics
// ⭐ SSOT: 고객/포트폴리오 API 핸들러는 이 구조체에서만
type CustomerHandler struct {
	snapshot *source.Snapshot
	pipeline *selection.Pipeline
	stamp    dashconfig.Stamp
	logger   *logger.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(snap *source.Snapshot, pipeline *selection.Pipeline, stamp dashconfig.Stamp, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		snapshot: snap,
		pipeline: pipeline,
		stamp:    stamp,
		logger:   log,
	}
}

// Meta identifies the config and data a response was computed from
type Meta struct {
	ConfigHash      string `json:"config_hash"`
	DashboardID     string `json:"dashboard_id"`
	SnapshotVersion uint64 `json:"snapshot_version"`
	Source          string `json:"source"`
}

func (h *CustomerHandler) meta(info source.Info) Meta {
	return Meta{
		ConfigHash:      h.stamp.ConfigHash,
		DashboardID:     h.stamp.DashboardID,
		SnapshotVersion: info.Version,
		Source:          info.Source,
	}
}

// parseQuery reads filters, search, sort and limit from the query string
func (h *CustomerHandler) parseQuery(r *http.Request) (selection.Query, error) {
	v := r.URL.Query()
	return h.pipeline.ParseQuery(selection.QueryParams{
		Gender:       v.Get("gender"),
		Relationship: v.Get("relationship"),
		Advisor:      v.Get("advisor"),
		Tenure:       v.Get("tenure"),
		Revenue:      v.Get("revenue"),
		Risk:         v.Get("risk"),
		Search:       v.Get("q"),
		Sort:         v.Get("sort"),
		Direction:    v.Get("dir"),
		Limit:        v.Get("limit"),
	})
}

// records returns the held snapshot, or false after responding 503
func (h *CustomerHandler) records(w http.ResponseWriter) ([]contracts.Customer, source.Info, bool) {
	records, info := h.snapshot.View()
	if info.Version == 0 {
		respondError(w, http.StatusServiceUnavailable, "Customer snapshot not loaded yet")
		return nil, source.Info{}, false
	}
	return records, info, true
}

// List returns the filtered, sorted and limited customer list
// GET /api/customers?gender=&relationship=&advisor=&tenure=&revenue=&risk=&q=&sort=&dir=&limit=
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		respondParseError(w, err)
		return
	}

	records, info, ok := h.records(w)
	if !ok {
		return
	}

	result := h.pipeline.Run(records, q)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
		"meta":    h.meta(info),
	})
}

// Get returns one customer's profile against the filtered portfolio
// GET /api/customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "client id is required")
		return
	}

	q, err := h.parseQuery(r)
	if err != nil {
		respondParseError(w, err)
		return
	}

	records, info, ok := h.records(w)
	if !ok {
		return
	}

	profile, err := h.pipeline.Profile(records, q, id)
	if errors.Is(err, selection.ErrCustomerNotFound) {
		respondError(w, http.StatusNotFound, "Customer not found: "+id)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("client_id", id).Error("Failed to build profile")
		respondError(w, http.StatusInternalServerError, "Failed to build customer profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    profile,
		"meta":    h.meta(info),
	})
}

// Averages returns portfolio averages over the filtered set
// GET /api/portfolio/averages
func (h *CustomerHandler) Averages(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		respondParseError(w, err)
		return
	}

	records, info, ok := h.records(w)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.pipeline.Averages(records, q),
		"meta":    h.meta(info),
	})
}

// Summary returns the quick metrics of the filtered set
// GET /api/portfolio/summary
func (h *CustomerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		respondParseError(w, err)
		return
	}

	records, info, ok := h.records(w)
	if !ok {
		return
	}

	q.Limit = 0
	result := h.pipeline.Run(records, q)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result.Summary,
		"meta":    h.meta(info),
	})
}
