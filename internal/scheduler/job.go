package scheduler

import (
	"context"
	"time"
)

// Job is work run on a cron schedule
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	Name() string

	// Schedule is a cron expression with a leading seconds field, or a
	// descriptor such as "@hourly"
	Schedule() string

	// Run does one pass and reports what it touched
	Run(ctx context.Context) (Report, error)
}

// Report is what a run observed, e.g. the snapshot version it loaded or the
// latency of a store ping. It is logged and kept with the result.
type Report map[string]interface{}

// JobResult is one scheduled or manual run, retries included
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Report    Report        `json:"report,omitempty"`
}

// maxHistory bounds the results kept per job
const maxHistory = 100

// history holds the recent results of one job plus lifetime counters
type history struct {
	recent   []JobResult
	runs     int
	failures int
}

func (h *history) add(result JobResult) {
	h.runs++
	if !result.Success {
		h.failures++
	}

	h.recent = append(h.recent, result)
	if len(h.recent) > maxHistory {
		h.recent = h.recent[len(h.recent)-maxHistory:]
	}
}

// last returns the newest result matching keep
func (h *history) last(keep func(JobResult) bool) *JobResult {
	for i := len(h.recent) - 1; i >= 0; i-- {
		if keep(h.recent[i]) {
			r := h.recent[i]
			return &r
		}
	}
	return nil
}

// stats summarises the history; next is the upcoming cron fire time
func (h *history) stats(name, schedule string, next time.Time) JobStats {
	s := JobStats{
		JobName:      name,
		Schedule:     schedule,
		TotalRuns:    h.runs,
		SuccessCount: h.runs - h.failures,
		FailureCount: h.failures,
	}
	if h.runs > 0 {
		s.SuccessRate = float64(s.SuccessCount) / float64(h.runs)
	}

	if r := h.last(func(JobResult) bool { return true }); r != nil {
		s.LastRun = &r.StartTime
		s.LastReport = r.Report
		s.LastError = r.Error
	}
	if r := h.last(func(r JobResult) bool { return r.Success }); r != nil {
		s.LastSuccess = &r.StartTime
	}
	if r := h.last(func(r JobResult) bool { return !r.Success }); r != nil {
		s.LastFailure = &r.StartTime
	}
	if !next.IsZero() {
		s.NextRun = &next
	}

	return s
}

// JobStats is the status of one job as exposed by the API
type JobStats struct {
	JobName      string     `json:"job_name"`
	Schedule     string     `json:"schedule"`
	TotalRuns    int        `json:"total_runs"`
	SuccessCount int        `json:"success_count"`
	FailureCount int        `json:"failure_count"`
	SuccessRate  float64    `json:"success_rate"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	LastSuccess  *time.Time `json:"last_success,omitempty"`
	LastFailure  *time.Time `json:"last_failure,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
	LastReport   Report     `json:"last_report,omitempty"`
	NextRun      *time.Time `json:"next_run,omitempty"`
}
