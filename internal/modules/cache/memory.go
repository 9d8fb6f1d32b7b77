package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store used when MongoDB is not configured and in
// tests. Semantics mirror the Mongo implementation: upsert by key, expired
// entries stay present but invisible to Lookup until purged.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*Entry)}
}

func (m *Memory) Lookup(_ context.Context, key string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || !time.Now().Before(e.ExpiresAt) {
		return nil, nil
	}

	e.HitCount++
	e.LastAccessed = time.Now()

	copied := *e
	return &copied, nil
}

func (m *Memory) Store(_ context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *entry
	if prev, ok := m.entries[entry.QueryHash]; ok {
		copied.HitCount = prev.HitCount
	} else {
		copied.HitCount = 0
	}
	m.entries[entry.QueryHash] = &copied
	return nil
}

func (m *Memory) Stats(_ context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stats := &Stats{TotalQueriesCached: int64(len(m.entries))}

	active := make([]*Entry, 0, len(m.entries))
	all := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		all = append(all, e)
		if now.Before(e.ExpiresAt) {
			active = append(active, e)
		}
	}
	stats.ActiveCachedQueries = int64(len(active))
	stats.ExpiredQueries = stats.TotalQueriesCached - stats.ActiveCachedQueries

	for _, e := range active {
		stats.CacheHits.Total += e.HitCount
		if e.HitCount > stats.CacheHits.MaxSingleQuery {
			stats.CacheHits.MaxSingleQuery = e.HitCount
		}
	}
	if len(active) > 0 {
		avg := float64(stats.CacheHits.Total) / float64(len(active))
		stats.CacheHits.AveragePerQuery = float64(int(avg*100+0.5)) / 100
	}

	sort.Slice(active, func(i, j int) bool { return active[i].HitCount > active[j].HitCount })
	stats.TopPopularQueries = summarize(active, 10)

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	stats.RecentQueries = summarize(all, 10)

	return stats, nil
}

func (m *Memory) SimpleStats(ctx context.Context) (*SimpleStats, error) {
	full, err := m.Stats(ctx)
	if err != nil {
		return nil, err
	}
	top := full.TopPopularQueries
	if len(top) > 5 {
		top = top[:5]
	}
	return &SimpleStats{
		TotalQueriesCached:  full.TotalQueriesCached,
		ActiveCachedQueries: full.ActiveCachedQueries,
		ExpiredQueries:      full.ExpiredQueries,
		TotalCacheHits:      full.CacheHits.Total,
		TopQueries:          top,
	}, nil
}

func (m *Memory) Clear(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.entries))
	m.entries = make(map[string]*Entry)
	return n, nil
}

func (m *Memory) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var n int64
	for key, e := range m.entries {
		if !now.Before(e.ExpiresAt) {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func summarize(entries []*Entry, limit int) []QuerySummary {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]QuerySummary, len(entries))
	for i, e := range entries {
		out[i] = QuerySummary{
			OriginalQuery: e.OriginalQuery,
			HitCount:      e.HitCount,
			CreatedAt:     e.CreatedAt,
		}
	}
	return out
}
