package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/c360/internal/api/handlers"
	"github.com/wonny/c360/pkg/logger"
)

// Handlers are the endpoint groups mounted by NewRouter
type Handlers struct {
	Health    *handlers.HealthHandler
	Customers *handlers.CustomerHandler
	Snapshots *handlers.SnapshotHandler
	Scheduler *handlers.SchedulerHandler
}

// NewRouter creates and configures the HTTP router.
// limiter may be nil; clients decides whose budget a request spends.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, limiter Limiter, clients *ClientResolver, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", h.Health.Check).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Customers
	api.HandleFunc("/customers", h.Customers.List).Methods("GET")
	api.HandleFunc("/customers/{id}", h.Customers.Get).Methods("GET")

	// Portfolio
	api.HandleFunc("/portfolio/averages", h.Customers.Averages).Methods("GET")
	api.HandleFunc("/portfolio/summary", h.Customers.Summary).Methods("GET")

	// Snapshot & config
	api.HandleFunc("/snapshot", h.Snapshots.GetInfo).Methods("GET")
	api.HandleFunc("/snapshot/reload", h.Snapshots.Reload).Methods("POST")
	api.HandleFunc("/config", h.Snapshots.GetConfig).Methods("GET")

	// Scheduler
	api.HandleFunc("/scheduler/jobs", h.Scheduler.ListJobs).Methods("GET")
	api.HandleFunc("/scheduler/jobs/{name}/run", h.Scheduler.RunJob).Methods("POST")

	api.Use(rateLimitMiddleware(limiter, clients, log))

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}
