package source

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

// invalidatingSource records Invalidate calls
type invalidatingSource struct {
	*fakeSource
	invalidated int
}

func (s *invalidatingSource) Invalidate(ctx context.Context) error {
	s.invalidated++
	return nil
}

func TestSnapshot_Load(t *testing.T) {
	origin := &fakeSource{name: "csv:a.csv", customers: storedCustomers()}
	snap := NewSnapshot(origin, logger.NewNop())

	assert.False(t, snap.Loaded())
	assert.Empty(t, snap.Records())
	assert.Equal(t, "csv:a.csv", snap.Info().Source)

	info, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Loaded())
	assert.Equal(t, 2, info.Count)
	assert.Equal(t, uint64(1), info.Version)
	assert.False(t, info.LoadedAt.IsZero())
	assert.Equal(t, info, snap.Info())

	info, err = snap.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), info.Version)
}

func TestSnapshot_RecordsIsCopy(t *testing.T) {
	snap := NewSnapshot(&fakeSource{name: "x", customers: storedCustomers()}, logger.NewNop())
	_, err := snap.Load(context.Background())
	require.NoError(t, err)

	records := snap.Records()
	records[0].Name = "changed"

	assert.Equal(t, "Ann Lee", snap.Records()[0].Name)
}

func TestSnapshot_FailedLoadKeepsPrevious(t *testing.T) {
	origin := &fakeSource{name: "x", customers: storedCustomers()}
	snap := NewSnapshot(origin, logger.NewNop())

	_, err := snap.Load(context.Background())
	require.NoError(t, err)

	origin.set(nil, errOrigin)
	info, err := snap.Load(context.Background())
	assert.ErrorIs(t, err, errOrigin)
	assert.Equal(t, uint64(1), info.Version)
	assert.Len(t, snap.Records(), 2)
}

func TestSnapshot_Reload(t *testing.T) {
	origin := &invalidatingSource{fakeSource: &fakeSource{name: "x", customers: storedCustomers()}}
	snap := NewSnapshot(origin, logger.NewNop())

	_, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, origin.invalidated)

	origin.set([]contracts.Customer{{ClientID: "ONLY"}}, nil)
	info, err := snap.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, origin.invalidated)
	assert.Equal(t, 1, info.Count)
	assert.Equal(t, "ONLY", snap.Records()[0].ClientID)
}

func TestSnapshot_ReloadWithoutInvalidator(t *testing.T) {
	snap := NewSnapshot(&fakeSource{name: "x"}, logger.NewNop())

	info, err := snap.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.Count)
	assert.True(t, snap.Loaded())
}

func TestSnapshot_ViewIsConsistent(t *testing.T) {
	origin := &fakeSource{name: "x", customers: storedCustomers()}
	snap := NewSnapshot(origin, logger.NewNop())

	records, info := snap.View()
	assert.Empty(t, records)
	assert.Zero(t, info.Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sets := [][]contracts.Customer{storedCustomers(), storedCustomers()[:1]}
		for i := 0; ctx.Err() == nil; i++ {
			origin.set(sets[i%2], nil)
			_, _ = snap.Load(ctx)
		}
	}()

	for i := 0; i < 1000; i++ {
		records, info := snap.View()
		require.Len(t, records, info.Count, "version %d", info.Version)
	}
	cancel()
	wg.Wait()

	records, _ = snap.View()
	records[0].Name = "changed"
	fresh, _ := snap.View()
	assert.NotEqual(t, "changed", fresh[0].Name)
}
