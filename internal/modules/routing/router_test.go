package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCompleter(response string, err error) func(context.Context, string, string) (string, error) {
	return func(context.Context, string, string) (string, error) {
		return response, err
	}
}

func TestRouteParsesModelJSON(t *testing.T) {
	r := NewRouter(stubCompleter(`{
		"states": ["Punjab"],
		"districts": [],
		"crops": ["rice"],
		"crop_types": [],
		"years": ["2014"],
		"data_needed": ["crop_production"],
		"aggregation": "top"
	}`, nil), nil)

	params := r.Route(context.Background(), "Top rice producing districts of Punjab in 2014")
	assert.Equal(t, []string{"Punjab"}, params.States)
	assert.Equal(t, []string{"rice"}, params.Crops)
	assert.Equal(t, []Source{SourceCropProduction}, params.DataNeeded)
	assert.Equal(t, AggregationTop, params.Aggregation)
}

func TestRouteExtractsJSONFromProse(t *testing.T) {
	raw := "Sure, here is the routing decision:\n```json\n" +
		`{"states":["Kerala"],"data_needed":["historical_rainfall"],"years":["1950"]}` +
		"\n```\nLet me know if you need anything else."
	r := NewRouter(stubCompleter(raw, nil), nil)

	params := r.Route(context.Background(), "Rainfall in Kerala in 1950")
	assert.Equal(t, []string{"Kerala"}, params.States)
	assert.Equal(t, []Source{SourceHistoricalRainfall}, params.DataNeeded)
}

func TestRouteFallsBackOnInferenceError(t *testing.T) {
	r := NewRouter(stubCompleter("", errors.New("provider down")), nil)

	params := r.Route(context.Background(), "anything")
	assert.Equal(t, FallbackParams(), params)
}

func TestRouteFallsBackOnUnparseableResponse(t *testing.T) {
	r := NewRouter(stubCompleter("I cannot answer that in JSON, sorry.", nil), nil)

	params := r.Route(context.Background(), "anything")
	require.Equal(t, []Source{SourceCropProduction, SourceRainfall}, params.DataNeeded)
	assert.Empty(t, params.States)
	assert.Empty(t, params.Years)
}

func TestValidateDropsUnknownSources(t *testing.T) {
	p := RouteParams{DataNeeded: []Source{"made_up", SourceDailyRainfall}}
	p.Validate()
	assert.Equal(t, []Source{SourceDailyRainfall}, p.DataNeeded)
}

func TestValidateEmptySourcesGetDefault(t *testing.T) {
	p := RouteParams{DataNeeded: []Source{"bogus"}}
	p.Validate()
	assert.Equal(t, []Source{SourceCropProduction, SourceRainfall}, p.DataNeeded)
	assert.NotNil(t, p.States)
	assert.NotNil(t, p.Districts)
	assert.NotNil(t, p.Crops)
	assert.NotNil(t, p.CropTypes)
	assert.NotNil(t, p.Years)
}

func TestNeeds(t *testing.T) {
	p := FallbackParams()
	assert.True(t, p.Needs(SourceCropProduction))
	assert.True(t, p.Needs(SourceRainfall))
	assert.False(t, p.Needs(SourceApedaProduction))
}
