package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/c360/internal/scheduler"
	"github.com/wonny/c360/pkg/logger"
)

// JobRunner is satisfied by *scheduler.Scheduler
type JobRunner interface {
	GetJobStats() []scheduler.JobStats
	RunJob(name string) (scheduler.JobResult, error)
}

// SchedulerHandler exposes the background jobs of the serve runtime
type SchedulerHandler struct {
	jobs   JobRunner
	logger *logger.Logger
}

// NewSchedulerHandler creates a new scheduler handler. jobs may be nil when
// the process runs without a scheduler.
func NewSchedulerHandler(jobs JobRunner, log *logger.Logger) *SchedulerHandler {
	return &SchedulerHandler{jobs: jobs, logger: log}
}

// ListJobs handles GET /api/scheduler/jobs
func (h *SchedulerHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not running")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.jobs.GetJobStats(),
	})
}

// RunJob handles POST /api/scheduler/jobs/{name}/run. The job runs to
// completion, retries included, before the response is written.
func (h *SchedulerHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not running")
		return
	}

	name := mux.Vars(r)["name"]
	result, err := h.jobs.RunJob(name)
	if errors.Is(err, scheduler.ErrJobNotFound) {
		respondError(w, http.StatusNotFound, "Job not found: "+name)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"job":     name,
		"success": result.Success,
	}).Info("Job run on request")

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	respondJSON(w, status, map[string]interface{}{
		"success": result.Success,
		"data":    result,
	})
}
