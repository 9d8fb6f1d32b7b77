package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-samarth/core/internal/config"
	"github.com/project-samarth/core/internal/modules/answer"
	"github.com/project-samarth/core/internal/modules/cache"
	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

type nilClient struct{}

func (nilClient) FetchCropProduction(context.Context) ([]datagov.CropRecord, error) {
	return nil, nil
}
func (nilClient) FetchAPEDA(context.Context, string, string, string) ([]datagov.Row, error) {
	return nil, nil
}
func (nilClient) FetchDailyRainfall(context.Context, string, string, string, int) ([]datagov.Row, error) {
	return nil, nil
}
func (nilClient) FetchHistoricalRainfall(context.Context, string, string, int) ([]datagov.Row, error) {
	return nil, nil
}

var testTTL = config.CacheTTLDays{
	ApedaProduction:    180,
	CropProduction:     365,
	HistoricalRainfall: 365,
	DailyRainfall:      90,
	Default:            90,
}

func testService(t *testing.T, store cache.Store, routeJSON, answerText string) *Service {
	t.Helper()

	routeCompleter := func(context.Context, string, string) (string, error) {
		return routeJSON, nil
	}
	answerCompleter := func(context.Context, string, string) (string, error) {
		return answerText, nil
	}

	eng := engine.NewEngine(datagov.SampleCropData(), datagov.SampleRainfallData(), nilClient{}, nil)
	return NewService(
		store,
		routing.NewRouter(routeCompleter, nil),
		eng,
		answer.NewSynthesizer(answerCompleter, nil),
		testTTL,
		nil,
	)
}

func TestAskMissThenHit(t *testing.T) {
	store := cache.NewMemory()
	routeJSON := `{"states":["Punjab"],"crops":["rice"],"years":["2022"],"data_needed":["crop_production"]}`
	svc := testService(t, store, routeJSON, "Punjab produced a lot of rice in 2022-23.")
	ctx := context.Background()

	res, err := svc.Ask(ctx, "How much rice did Punjab produce in 2022?", "")
	require.NoError(t, err)
	assert.Equal(t, "Punjab produced a lot of rice in 2022-23.", res.Answer)
	assert.Equal(t, []string{"Punjab"}, res.QueryParams.States)
	require.Len(t, res.DataSources, 1)
	assert.Equal(t, "District-wise Crop Production Statistics", res.DataSources[0].Dataset)
	assert.Contains(t, res.RawResults, "crop_production")

	// Second ask, differently formatted, must come from cache.
	res2, err := svc.Ask(ctx, "  how much RICE did punjab produce in 2022?", "")
	require.NoError(t, err)
	assert.Equal(t, res.Answer, res2.Answer)
	assert.Equal(t, res.QueryParams, res2.QueryParams)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalQueriesCached)
	assert.Equal(t, int64(1), stats.CacheHits.Total)
}

func TestAskWithoutAIProviderReturnsError(t *testing.T) {
	svc := NewService(cache.NewMemory(), nil, nil, nil, testTTL, nil)

	_, err := svc.Ask(context.Background(), "anything", "")
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestAskCachedEntrySkipsAIDespiteNoProvider(t *testing.T) {
	store := cache.NewMemory()
	ctx := context.Background()

	entry := cache.NewEntry("warm question", routing.FallbackParams(), "warm answer", nil, engine.Results{}, 90)
	require.NoError(t, store.Store(ctx, entry))

	svc := NewService(store, nil, nil, nil, testTTL, nil)
	res, err := svc.Ask(ctx, "Warm   QUESTION", "")
	require.NoError(t, err)
	assert.Equal(t, "warm answer", res.Answer)
	assert.NotNil(t, res.DataSources)
}

func TestAskCallerAPIKeyOverridesAnswerProvider(t *testing.T) {
	store := cache.NewMemory()
	routeJSON := `{"states":["Punjab"],"crops":["rice"],"years":["2022"],"data_needed":["crop_production"]}`
	svc := testService(t, store, routeJSON, "configured-provider answer")

	var usedKey string
	svc.WithSynthesizerFactory(func(apiKey string) *answer.Synthesizer {
		usedKey = apiKey
		keyed := func(context.Context, string, string) (string, error) {
			return "caller-key answer", nil
		}
		return answer.NewSynthesizer(keyed, nil)
	})

	res, err := svc.Ask(context.Background(), "rice output of Punjab", "caller-key")
	require.NoError(t, err)
	assert.Equal(t, "caller-key answer", res.Answer)
	assert.Equal(t, "caller-key", usedKey)

	// No key falls back to the configured synthesizer.
	res2, err := svc.Ask(context.Background(), "wheat output of Punjab", "")
	require.NoError(t, err)
	assert.Equal(t, "configured-provider answer", res2.Answer)
}

func TestAskCallerAPIKeyEnablesAnswerWithoutConfiguredSynth(t *testing.T) {
	routeCompleter := func(context.Context, string, string) (string, error) {
		return `{"data_needed":["crop_production"]}`, nil
	}
	eng := engine.NewEngine(datagov.SampleCropData(), datagov.SampleRainfallData(), nilClient{}, nil)
	svc := NewService(cache.NewMemory(), routing.NewRouter(routeCompleter, nil), eng, nil, testTTL, nil).
		WithSynthesizerFactory(func(string) *answer.Synthesizer {
			keyed := func(context.Context, string, string) (string, error) {
				return "keyed answer", nil
			}
			return answer.NewSynthesizer(keyed, nil)
		})

	_, err := svc.Ask(context.Background(), "no key provided", "")
	assert.ErrorIs(t, err, ErrAINotConfigured)

	res, err := svc.Ask(context.Background(), "key provided this time", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "keyed answer", res.Answer)
}

func TestAskUnroutableQuestionFallsBackToDefaults(t *testing.T) {
	store := cache.NewMemory()
	svc := testService(t, store, "no json here", "fallback answer")

	res, err := svc.Ask(context.Background(), "something unparseable", "")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]routing.Source{routing.SourceCropProduction, routing.SourceRainfall},
		res.QueryParams.DataNeeded)
	assert.Contains(t, res.RawResults, "crop_production")
	assert.Contains(t, res.RawResults, "rainfall")
}
