package source

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

// Invalidator is implemented by sources that cache their snapshot
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Info describes the snapshot currently held
type Info struct {
	Source   string    `json:"source"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at"`
	Version  uint64    `json:"version"` // increments on every successful load
}

// Snapshot holds the last loaded dataset in memory. Loads replace it
// atomically; a failed load keeps the previous data.
// ⭐ SSOT: 공유 가능한 유일한 가변 상태
type Snapshot struct {
	source contracts.RecordSource
	logger *logger.Logger

	mu        sync.RWMutex
	customers []contracts.Customer
	info      Info
}

// NewSnapshot creates an empty snapshot over source
func NewSnapshot(source contracts.RecordSource, log *logger.Logger) *Snapshot {
	return &Snapshot{
		source: source,
		logger: log,
		info:   Info{Source: source.Name()},
	}
}

// Load fetches the dataset (through any cache) and swaps it in
func (s *Snapshot) Load(ctx context.Context) (Info, error) {
	customers, err := s.source.Load(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", s.source.Name()).Error("Snapshot load failed")
		return s.Info(), err
	}

	s.mu.Lock()
	s.customers = customers
	s.info = Info{
		Source:   s.source.Name(),
		Count:    len(customers),
		LoadedAt: time.Now(),
		Version:  s.info.Version + 1,
	}
	info := s.info
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"source":  info.Source,
		"count":   info.Count,
		"version": info.Version,
	}).Info("Snapshot loaded")

	return info, nil
}

// Reload invalidates any cached copy and loads from the origin
func (s *Snapshot) Reload(ctx context.Context) (Info, error) {
	if inv, ok := s.source.(Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			s.logger.WithError(err).Warn("Snapshot cache invalidation failed")
		}
	}
	return s.Load(ctx)
}

// Records returns a copy of the held customers
func (s *Snapshot) Records() []contracts.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contracts.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// View returns a copy of the held customers together with the metadata of
// the same load. Records and Info called separately can straddle a reload.
func (s *Snapshot) View() ([]contracts.Customer, Info) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contracts.Customer, len(s.customers))
	copy(out, s.customers)
	return out, s.info
}

// Info returns metadata of the held snapshot
func (s *Snapshot) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// Loaded reports whether at least one load succeeded
func (s *Snapshot) Loaded() bool {
	return s.Info().Version > 0
}
