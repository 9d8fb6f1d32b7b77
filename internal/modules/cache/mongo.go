package cache

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const collectionName = "query_cache"

// MongoStore is the production cache backend.
type MongoStore struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// NewMongoStore wraps the query_cache collection and ensures its indexes.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(collectionName)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "query_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create cache indexes: %w", err)
	}

	return &MongoStore{coll: coll, client: db.Client()}, nil
}

// Lookup returns a live entry and bumps its hit counter. Find and increment
// run as one atomic operation so the returned entry carries the new count and
// an entry that expires mid-call is never touched.
func (s *MongoStore) Lookup(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{
			"query_hash": key,
			"expires_at": bson.M{"$gt": time.Now()},
		},
		bson.M{
			"$inc": bson.M{"hit_count": 1},
			"$set": bson.M{"last_accessed": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Store upserts by query hash. All fields are overwritten except hit_count,
// which is only initialized on first insert.
func (s *MongoStore) Store(ctx context.Context, entry *Entry) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"query_hash": entry.QueryHash},
		bson.M{
			"$set": bson.M{
				"query_hash":       entry.QueryHash,
				"original_query":   entry.OriginalQuery,
				"normalized_query": entry.NormalizedQuery,
				"query_params":     entry.QueryParams,
				"answer":           entry.Answer,
				"data_sources":     entry.DataSources,
				"raw_results":      entry.RawResults,
				"created_at":       entry.CreatedAt,
				"expires_at":       entry.ExpiresAt,
				"last_accessed":    entry.LastAccessed,
			},
			"$setOnInsert": bson.M{"hit_count": 0},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now()

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := s.coll.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$gt": now}})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalQueriesCached:  total,
		ActiveCachedQueries: active,
		ExpiredQueries:      total - active,
	}

	hits, err := s.aggregateHits(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.CacheHits = *hits

	stats.TopPopularQueries, err = s.listSummaries(ctx,
		bson.M{"expires_at": bson.M{"$gt": now}},
		bson.D{{Key: "hit_count", Value: -1}}, 10)
	if err != nil {
		return nil, err
	}

	stats.RecentQueries, err = s.listSummaries(ctx,
		bson.M{},
		bson.D{{Key: "created_at", Value: -1}}, 10)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *MongoStore) SimpleStats(ctx context.Context) (*SimpleStats, error) {
	now := time.Now()

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := s.coll.CountDocuments(ctx, bson.M{"expires_at": bson.M{"$gt": now}})
	if err != nil {
		return nil, err
	}

	hits, err := s.aggregateHits(ctx, now)
	if err != nil {
		return nil, err
	}

	top, err := s.listSummaries(ctx,
		bson.M{"expires_at": bson.M{"$gt": now}},
		bson.D{{Key: "hit_count", Value: -1}}, 5)
	if err != nil {
		return nil, err
	}

	return &SimpleStats{
		TotalQueriesCached:  total,
		ActiveCachedQueries: active,
		ExpiredQueries:      total - active,
		TotalCacheHits:      hits.Total,
		TopQueries:          top,
	}, nil
}

func (s *MongoStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) aggregateHits(ctx context.Context, now time.Time) (*HitStats, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"expires_at": bson.M{"$gt": now}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"total_hits": bson.M{"$sum": "$hit_count"},
			"avg_hits":   bson.M{"$avg": "$hit_count"},
			"max_hits":   bson.M{"$max": "$hit_count"},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalHits int64   `bson:"total_hits"`
		AvgHits   float64 `bson:"avg_hits"`
		MaxHits   int64   `bson:"max_hits"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	hits := &HitStats{}
	if len(rows) > 0 {
		hits.Total = rows[0].TotalHits
		hits.AveragePerQuery = float64(int(rows[0].AvgHits*100+0.5)) / 100
		hits.MaxSingleQuery = rows[0].MaxHits
	}
	return hits, nil
}

func (s *MongoStore) listSummaries(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]QuerySummary, error) {
	opts := options.Find().
		SetSort(sort).
		SetLimit(limit).
		SetProjection(bson.M{"original_query": 1, "hit_count": 1, "created_at": 1, "_id": 0})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	summaries := []QuerySummary{}
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
