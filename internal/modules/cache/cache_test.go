package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-samarth/core/internal/config"
	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/modules/routing"
)

var testTTL = config.CacheTTLDays{
	ApedaProduction:    180,
	CropProduction:     365,
	HistoricalRainfall: 365,
	DailyRainfall:      90,
	Default:            90,
}

func TestDeriveKeyNormalizesCaseAndWhitespace(t *testing.T) {
	a := DeriveKey("What is rice production in Punjab?")
	b := DeriveKey("  what IS   rice     production in punjab?  ")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c := DeriveKey("What is wheat production in Punjab?")
	assert.NotEqual(t, a, c)
}

func TestTTLDaysPriorityOrder(t *testing.T) {
	tests := []struct {
		name   string
		needed []routing.Source
		want   int
	}{
		{"apeda wins over crop", []routing.Source{routing.SourceCropProduction, routing.SourceApedaProduction}, 180},
		{"crop production", []routing.Source{routing.SourceCropProduction}, 365},
		{"historical over daily", []routing.Source{routing.SourceDailyRainfall, routing.SourceHistoricalRainfall}, 365},
		{"daily rainfall", []routing.Source{routing.SourceDailyRainfall}, 90},
		{"sample rainfall falls through to default", []routing.Source{routing.SourceRainfall}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := routing.RouteParams{DataNeeded: tt.needed}
			assert.Equal(t, tt.want, TTLDays(testTTL, params))
		})
	}
}

func TestMemoryLookupMissOnUnknownKey(t *testing.T) {
	m := NewMemory()
	entry, err := m.Lookup(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMemoryStoreThenLookupIncrementsHitCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entry := NewEntry("Rice production in Punjab", routing.FallbackParams(), "answer text", nil, engine.Results{}, 90)
	require.NoError(t, m.Store(ctx, entry))

	got, err := m.Lookup(ctx, entry.QueryHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "answer text", got.Answer)
	assert.Equal(t, int64(1), got.HitCount)

	got, err = m.Lookup(ctx, entry.QueryHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.HitCount)
}

func TestMemoryExpiredEntryIsInvisible(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entry := NewEntry("old question", routing.FallbackParams(), "stale", nil, engine.Results{}, 90)
	entry.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, m.Store(ctx, entry))

	got, err := m.Lookup(ctx, entry.QueryHash)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRestorePreservesHitCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entry := NewEntry("repeat question", routing.FallbackParams(), "v1", nil, engine.Results{}, 90)
	require.NoError(t, m.Store(ctx, entry))

	for i := 0; i < 3; i++ {
		_, err := m.Lookup(ctx, entry.QueryHash)
		require.NoError(t, err)
	}

	fresh := NewEntry("repeat question", routing.FallbackParams(), "v2", nil, engine.Results{}, 90)
	require.NoError(t, m.Store(ctx, fresh))

	got, err := m.Lookup(ctx, entry.QueryHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Answer)
	assert.Equal(t, int64(4), got.HitCount)
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	deleted, err := m.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	for _, q := range []string{"q1", "q2", "q3"} {
		require.NoError(t, m.Store(ctx, NewEntry(q, routing.FallbackParams(), "a", nil, engine.Results{}, 90)))
	}

	deleted, err = m.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalQueriesCached)
}

func TestMemoryPurgeExpiredKeepsActiveEntries(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	live := NewEntry("live", routing.FallbackParams(), "a", nil, engine.Results{}, 90)
	require.NoError(t, m.Store(ctx, live))

	dead := NewEntry("dead", routing.FallbackParams(), "a", nil, engine.Results{}, 90)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, m.Store(ctx, dead))

	deleted, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := m.Lookup(ctx, live.QueryHash)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryStatsSplitsActiveAndExpired(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	active := NewEntry("popular", routing.FallbackParams(), "a", nil, engine.Results{}, 90)
	require.NoError(t, m.Store(ctx, active))
	for i := 0; i < 5; i++ {
		_, err := m.Lookup(ctx, active.QueryHash)
		require.NoError(t, err)
	}

	expired := NewEntry("forgotten", routing.FallbackParams(), "a", nil, engine.Results{}, 90)
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, m.Store(ctx, expired))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalQueriesCached)
	assert.Equal(t, int64(1), stats.ActiveCachedQueries)
	assert.Equal(t, int64(1), stats.ExpiredQueries)
	assert.Equal(t, int64(5), stats.CacheHits.Total)
	assert.Equal(t, int64(5), stats.CacheHits.MaxSingleQuery)
	require.Len(t, stats.TopPopularQueries, 1)
	assert.Equal(t, "popular", stats.TopPopularQueries[0].OriginalQuery)
	// Recent listing includes expired entries.
	assert.Len(t, stats.RecentQueries, 2)

	simple, err := m.SimpleStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), simple.TotalCacheHits)
}

func TestNewEntryExpiryMatchesTTL(t *testing.T) {
	entry := NewEntry("q", routing.FallbackParams(), "a", nil, engine.Results{}, 180)
	lifetime := entry.ExpiresAt.Sub(entry.CreatedAt)
	assert.Equal(t, 180*24*time.Hour, lifetime)
	assert.Zero(t, entry.HitCount)
}
