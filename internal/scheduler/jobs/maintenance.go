package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/c360/internal/scheduler"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/logger"
	"github.com/wonny/c360/pkg/redis"
)

// DBChecker reports database health; *database.DB implements it
type DBChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// HealthCheckJob pings the backing stores and warns on pool exhaustion
type HealthCheckJob struct {
	db     DBChecker
	redis  *redis.Client
	logger *logger.Logger
}

// NewHealthCheckJob creates a new health check job. db may be nil.
func NewHealthCheckJob(db DBChecker, rdb *redis.Client, log *logger.Logger) *HealthCheckJob {
	return &HealthCheckJob{
		db:     db,
		redis:  rdb,
		logger: log,
	}
}

// Name returns the job name
func (j *HealthCheckJob) Name() string {
	return "health_check"
}

// Schedule returns the cron schedule (every minute)
func (j *HealthCheckJob) Schedule() string {
	return "0 * * * * *"
}

// Run checks each configured store. Stores that are not configured are
// reported as "off".
func (j *HealthCheckJob) Run(ctx context.Context) (scheduler.Report, error) {
	report := scheduler.Report{"database": "off", "redis": "off"}

	if j.db != nil {
		status, err := j.db.HealthCheck(ctx)
		if err != nil {
			return nil, fmt.Errorf("database unhealthy: %w", err)
		}

		report["database"] = "ok"
		report["db_response_time"] = status.ResponseTime.String()
		report["db_acquired_conns"] = status.Stats.AcquiredConns
		report["db_total_conns"] = status.Stats.TotalConns

		if limit := status.Stats.MaxConns; limit > 0 && status.Stats.AcquiredConns >= limit {
			j.logger.WithField("max_conns", limit).Warn("Database pool exhausted")
		}
	}

	if j.redis.Enabled() {
		if err := j.redis.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis unhealthy: %w", err)
		}
		report["redis"] = "ok"
	}

	return report, nil
}
