package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/logger"
	"github.com/wonny/c360/pkg/redis"
)

type emptySource struct{}

func (emptySource) Name() string { return "empty" }

func (emptySource) Load(ctx context.Context) ([]contracts.Customer, error) {
	return nil, nil
}

type stubDB struct {
	err error
}

func (d stubDB) HealthCheck(ctx context.Context) (*database.HealthStatus, error) {
	if d.err != nil {
		return &database.HealthStatus{Error: d.err.Error()}, d.err
	}
	return &database.HealthStatus{Healthy: true, Stats: database.PoolStats{MaxConns: 10}}, nil
}

func checkHealth(t *testing.T, h *HealthHandler) (int, map[string]interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest("GET", "/health", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_WithDependencies(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	snap := source.NewSnapshot(emptySource{}, logger.NewNop())
	h := NewHealthHandler(snap, stubDB{}, redis.NewFromClient(rdb))

	code, body := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["redis"])
	assert.Equal(t, true, body["database"].(map[string]interface{})["healthy"])
	assert.Equal(t, "empty", body["snapshot"].(map[string]interface{})["source"])
}

func TestHealth_Degraded(t *testing.T) {
	snap := source.NewSnapshot(emptySource{}, logger.NewNop())
	h := NewHealthHandler(snap, stubDB{err: errors.New("connection refused")}, redis.Disabled())

	code, body := checkHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "connection refused", body["database"].(map[string]interface{})["error"])
	assert.NotContains(t, body, "redis")
}

func TestHealth_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	snap := source.NewSnapshot(emptySource{}, logger.NewNop())
	code, body := checkHealth(t, NewHealthHandler(snap, nil, redis.NewFromClient(rdb)))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.NotEqual(t, "ok", body["redis"])
}
