package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/pkg/logger"
)

// countingJob fails its first failures runs
type countingJob struct {
	name     string
	schedule string
	failures int32
	runs     atomic.Int32
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) (Report, error) {
	n := j.runs.Add(1)
	if n <= j.failures {
		return nil, errors.New("transient failure")
	}
	return Report{"run": int(n)}, nil
}

func newTestScheduler(retries int) *Scheduler {
	return New(logger.NewNop(), WithRetry(retries, time.Millisecond))
}

func TestScheduler_AddJob(t *testing.T) {
	s := newTestScheduler(0)

	require.NoError(t, s.AddJob(&countingJob{name: "b", schedule: "0 */15 * * * *"}))
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "@hourly"}))

	err := s.AddJob(&countingJob{name: "a", schedule: "@hourly"})
	assert.Error(t, err, "duplicate name")

	err = s.AddJob(&countingJob{name: "bad", schedule: "every now and then"})
	assert.Error(t, err)

	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())
}

func TestScheduler_RunJobSuccess(t *testing.T) {
	s := newTestScheduler(3)
	job := &countingJob{name: "refresh", schedule: "@hourly"}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJob("refresh")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.Error)
	assert.Equal(t, Report{"run": 1}, result.Report)
	assert.Equal(t, int32(1), job.runs.Load())

	_, err = s.RunJob("unknown")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestScheduler_RetriesThenSucceeds(t *testing.T) {
	s := newTestScheduler(3)
	job := &countingJob{name: "refresh", schedule: "@hourly", failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJob("refresh")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, Report{"run": 3}, result.Report, "report of the successful attempt")
}

func TestScheduler_FailsAfterRetries(t *testing.T) {
	s := newTestScheduler(1)
	job := &countingJob{name: "refresh", schedule: "@hourly", failures: 10}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJob("refresh")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, "transient failure", result.Error)
	assert.Nil(t, result.Report)

	stats := s.GetJobStats()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].TotalRuns)
	assert.Equal(t, 1, stats[0].FailureCount)
	assert.Equal(t, 0.0, stats[0].SuccessRate)
	assert.Equal(t, "transient failure", stats[0].LastError)
	assert.NotNil(t, stats[0].LastFailure)
	assert.Nil(t, stats[0].LastSuccess)
}

func TestScheduler_StopCancelsRetryWait(t *testing.T) {
	s := New(logger.NewNop(), WithRetry(5, time.Hour))
	job := &countingJob{name: "refresh", schedule: "@hourly", failures: 10}
	require.NoError(t, s.AddJob(job))

	done := make(chan JobResult, 1)
	go func() {
		result, _ := s.RunJob("refresh")
		done <- result
	}()

	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		assert.False(t, result.Success)
		assert.Equal(t, 1, result.Attempts)
	case <-time.After(time.Second):
		t.Fatal("retry wait was not cancelled by Stop")
	}
}

func TestScheduler_Stats(t *testing.T) {
	s := newTestScheduler(0)
	require.NoError(t, s.AddJob(&countingJob{name: "refresh", schedule: "@hourly", failures: 1}))
	require.NoError(t, s.AddJob(&countingJob{name: "health", schedule: "@hourly"}))

	_, _ = s.RunJob("refresh")
	_, _ = s.RunJob("refresh")

	stats := s.GetJobStats()
	require.Len(t, stats, 2)
	assert.Equal(t, "health", stats[0].JobName, "sorted by name")
	assert.Zero(t, stats[0].TotalRuns)
	assert.Nil(t, stats[0].LastRun)

	refresh := stats[1]
	assert.Equal(t, 2, refresh.TotalRuns)
	assert.Equal(t, 0.5, refresh.SuccessRate)
	assert.NotNil(t, refresh.LastSuccess)
	assert.Empty(t, refresh.LastError, "latest run succeeded")
	assert.Equal(t, Report{"run": 2}, refresh.LastReport)
	assert.Equal(t, "@hourly", refresh.Schedule)
}

func TestScheduler_CronTrigger(t *testing.T) {
	s := newTestScheduler(0)
	job := &countingJob{name: "tick", schedule: "* * * * * *"}
	require.NoError(t, s.AddJob(job))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.NotNil(t, s.GetJobStats()[0].NextRun)
}

func TestHistory_KeepsLifetimeCounts(t *testing.T) {
	h := &history{}
	assert.Zero(t, h.stats("job", "@hourly", time.Time{}).SuccessRate)

	for i := 0; i < maxHistory+20; i++ {
		h.add(JobResult{Success: i%4 != 0})
	}

	assert.Len(t, h.recent, maxHistory)

	stats := h.stats("job", "@hourly", time.Time{})
	assert.Equal(t, maxHistory+20, stats.TotalRuns)
	assert.Equal(t, 30, stats.FailureCount)
	assert.InDelta(t, 0.75, stats.SuccessRate, 1e-9)
	assert.Nil(t, stats.NextRun)
}
