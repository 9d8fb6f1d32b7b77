// Package query runs the question-answering pipeline: cache lookup, source
// routing, data retrieval, answer generation, cache store.
package query

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/config"
	"github.com/project-samarth/core/internal/modules/answer"
	"github.com/project-samarth/core/internal/modules/cache"
	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/modules/routing"
)

// ErrAINotConfigured is returned when no AI provider is available for routing
// or answer generation.
var ErrAINotConfigured = errors.New("AI provider API keys required; configure at least one provider")

// Response is the full pipeline output for one question.
type Response struct {
	Question    string              `json:"question"`
	Answer      string              `json:"answer"`
	DataSources []engine.Citation   `json:"data_sources"`
	QueryParams routing.RouteParams `json:"query_params"`
	RawResults  engine.Results      `json:"raw_results"`
}

// SynthesizerFactory builds an answer synthesizer bound to a caller-supplied
// API key. Returning nil means the key cannot be used.
type SynthesizerFactory func(apiKey string) *answer.Synthesizer

// Service orchestrates the pipeline. Cache failures on either side of the
// pipeline degrade to a full recompute; only a missing AI provider is fatal
// to a request.
type Service struct {
	store    cache.Store
	router   *routing.Router
	engine   *engine.Engine
	synth    *answer.Synthesizer
	synthFor SynthesizerFactory
	ttl      config.CacheTTLDays
	logger   *zap.Logger
}

func NewService(store cache.Store, router *routing.Router, eng *engine.Engine, synth *answer.Synthesizer, ttl config.CacheTTLDays, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, router: router, engine: eng, synth: synth, ttl: ttl, logger: logger}
}

// WithSynthesizerFactory enables per-request answer API keys.
func (s *Service) WithSynthesizerFactory(f SynthesizerFactory) *Service {
	s.synthFor = f
	return s
}

// Ask answers one question, serving from cache when the normalized question
// has been answered before and its entry has not expired. A non-empty apiKey
// overrides the configured provider key for answer generation only; routing
// always uses the configured provider.
func (s *Service) Ask(ctx context.Context, question, apiKey string) (*Response, error) {
	key := cache.DeriveKey(question)

	entry, err := s.store.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", zap.String("query_hash", key), zap.Error(err))
	}
	if entry != nil {
		s.logger.Info("cache hit", zap.String("query_hash", key), zap.Int64("hit_count", entry.HitCount))
		return &Response{
			Question:    question,
			Answer:      entry.Answer,
			DataSources: nonNilCitations(entry.DataSources),
			QueryParams: entry.QueryParams,
			RawResults:  entry.RawResults,
		}, nil
	}

	synth := s.synth
	if apiKey != "" && s.synthFor != nil {
		if override := s.synthFor(apiKey); override != nil {
			synth = override
		}
	}
	if s.router == nil || synth == nil {
		return nil, ErrAINotConfigured
	}

	params := s.router.Route(ctx, question)

	results, citations := s.engine.Execute(ctx, params)

	answerText := synth.Generate(ctx, question, results, citations)

	ttlDays := cache.TTLDays(s.ttl, params)
	if err := s.store.Store(ctx, cache.NewEntry(question, params, answerText, citations, results, ttlDays)); err != nil {
		s.logger.Warn("cache store failed", zap.String("query_hash", key), zap.Error(err))
	}

	return &Response{
		Question:    question,
		Answer:      answerText,
		DataSources: nonNilCitations(citations),
		QueryParams: params,
		RawResults:  results,
	}, nil
}

func nonNilCitations(citations []engine.Citation) []engine.Citation {
	if citations == nil {
		return []engine.Citation{}
	}
	return citations
}
