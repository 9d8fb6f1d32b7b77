// Package cache implements the content-addressed response cache: normalized
// questions map to a stable key, entries carry a data-type-aware TTL, and
// every operation degrades to a cache miss rather than failing the request.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/project-samarth/core/internal/config"
	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/modules/routing"
)

// Entry is one cached question/answer tuple.
type Entry struct {
	QueryHash       string              `json:"query_hash" bson:"query_hash"`
	OriginalQuery   string              `json:"original_query" bson:"original_query"`
	NormalizedQuery string              `json:"normalized_query" bson:"normalized_query"`
	QueryParams     routing.RouteParams `json:"query_params" bson:"query_params"`
	Answer          string              `json:"answer" bson:"answer"`
	DataSources     []engine.Citation   `json:"data_sources" bson:"data_sources"`
	RawResults      engine.Results      `json:"raw_results" bson:"raw_results"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	ExpiresAt       time.Time           `json:"expires_at" bson:"expires_at"`
	LastAccessed    time.Time           `json:"last_accessed" bson:"last_accessed"`
	HitCount        int64               `json:"hit_count" bson:"hit_count"`
}

// QuerySummary is a compact view of an entry for stats listings.
type QuerySummary struct {
	OriginalQuery string    `json:"original_query" bson:"original_query"`
	HitCount      int64     `json:"hit_count" bson:"hit_count"`
	CreatedAt     time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// HitStats aggregates hit counts over active (non-expired) entries.
type HitStats struct {
	Total           int64   `json:"total"`
	AveragePerQuery float64 `json:"average_per_query"`
	MaxSingleQuery  int64   `json:"max_hits_single_query"`
}

// Stats is the full cache statistics breakdown.
type Stats struct {
	TotalQueriesCached  int64          `json:"total_queries_cached"`
	ActiveCachedQueries int64          `json:"active_cached_queries"`
	ExpiredQueries      int64          `json:"expired_queries"`
	CacheHits           HitStats       `json:"cache_hits"`
	TopPopularQueries   []QuerySummary `json:"top_10_popular_queries"`
	RecentQueries       []QuerySummary `json:"recent_10_queries"`
}

// SimpleStats is the lightweight snapshot embedded in health checks.
type SimpleStats struct {
	TotalQueriesCached  int64          `json:"total_queries_cached"`
	ActiveCachedQueries int64          `json:"active_cached_queries"`
	ExpiredQueries      int64          `json:"expired_queries"`
	TotalCacheHits      int64          `json:"total_cache_hits"`
	TopQueries          []QuerySummary `json:"top_5_queries"`
}

// Store is the cache backend. Lookup returns (nil, nil) on a miss — absence
// is the documented miss signal, not an error. Implementations must upsert by
// QueryHash and must not reset HitCount when overwriting an existing key.
type Store interface {
	Lookup(ctx context.Context, key string) (*Entry, error)
	Store(ctx context.Context, entry *Entry) error
	Stats(ctx context.Context) (*Stats, error)
	SimpleStats(ctx context.Context) (*SimpleStats, error)
	Clear(ctx context.Context) (int64, error)
	PurgeExpired(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Normalize canonicalizes question text: lowercase, trimmed, internal
// whitespace collapsed to single spaces.
func Normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// DeriveKey fingerprints a question. Questions differing only in case or
// whitespace map to the same key, and the key is stable across restarts.
func DeriveKey(question string) string {
	sum := md5.Sum([]byte(Normalize(question)))
	return hex.EncodeToString(sum[:])
}

// TTLDays picks the expiration for a routing decision. The first matching
// source wins, in this fixed priority order; slower-moving datasets get
// longer lifetimes.
func TTLDays(ttl config.CacheTTLDays, params routing.RouteParams) int {
	switch {
	case params.Needs(routing.SourceApedaProduction):
		return ttl.ApedaProduction
	case params.Needs(routing.SourceCropProduction):
		return ttl.CropProduction
	case params.Needs(routing.SourceHistoricalRainfall):
		return ttl.HistoricalRainfall
	case params.Needs(routing.SourceDailyRainfall):
		return ttl.DailyRainfall
	default:
		return ttl.Default
	}
}

// NewEntry assembles a cache entry for a freshly computed answer. HitCount
// starts at zero; stores preserve an existing count on overwrite.
func NewEntry(question string, params routing.RouteParams, answer string, sources []engine.Citation, results engine.Results, ttlDays int) *Entry {
	now := time.Now()
	return &Entry{
		QueryHash:       DeriveKey(question),
		OriginalQuery:   question,
		NormalizedQuery: Normalize(question),
		QueryParams:     params,
		Answer:          answer,
		DataSources:     sources,
		RawResults:      results,
		CreatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(ttlDays) * 24 * time.Hour),
		LastAccessed:    now,
	}
}
