package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

// fakeClient serves canned rows and records what was requested.
type fakeClient struct {
	apedaRows      []datagov.Row
	apedaErr       error
	apedaCalls     []string // fin years, in order
	lastCategory   string
	lastProduct    string
	dailyRows      []datagov.Row
	historicalRows []datagov.Row
	subdivisions   []string
}

func (f *fakeClient) FetchCropProduction(context.Context) ([]datagov.CropRecord, error) {
	return nil, nil
}

func (f *fakeClient) FetchAPEDA(_ context.Context, finYear, category, productCode string) ([]datagov.Row, error) {
	f.apedaCalls = append(f.apedaCalls, finYear)
	f.lastCategory = category
	f.lastProduct = productCode
	return f.apedaRows, f.apedaErr
}

func (f *fakeClient) FetchDailyRainfall(_ context.Context, state, district, year string, limit int) ([]datagov.Row, error) {
	return f.dailyRows, nil
}

func (f *fakeClient) FetchHistoricalRainfall(_ context.Context, subdivision, year string, limit int) ([]datagov.Row, error) {
	f.subdivisions = append(f.subdivisions, subdivision)
	return f.historicalRows, nil
}

func testEngine(client datagov.Client) *Engine {
	return NewEngine(datagov.SampleCropData(), datagov.SampleRainfallData(), client, nil)
}

func TestCropProductionFiltersByStateCropAndYear(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		States:     []string{"punjab"},
		Crops:      []string{"RICE"},
		Years:      []string{"2022"},
		DataNeeded: []routing.Source{routing.SourceCropProduction},
	}

	results, citations := e.Execute(context.Background(), params)
	require.Len(t, citations, 1)
	assert.Equal(t, "District-wise Crop Production Statistics", citations[0].Dataset)

	res := results[string(routing.SourceCropProduction)]
	require.Len(t, res, 1)
	assert.Equal(t, "crop_data", res[0].Type)

	rows, ok := res[0].Data.([]datagov.CropRecord)
	require.True(t, ok)
	// "2022" matches fiscal "2022-23" by leading year only.
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "Punjab", r.StateName)
		assert.Equal(t, "Rice", r.Crop)
		assert.Equal(t, "2022-23", r.CropYear)
	}
}

func TestCropProductionEmptyResultCarriesAvailableYears(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		Years:      []string{"1999"},
		DataNeeded: []routing.Source{routing.SourceCropProduction},
	}

	results, _ := e.Execute(context.Background(), params)
	res := results[string(routing.SourceCropProduction)]
	require.Len(t, res, 1)

	rows, ok := res[0].Data.([]datagov.CropRecord)
	require.True(t, ok)
	assert.Empty(t, rows)

	require.NotNil(t, res[0].Metadata)
	assert.Equal(t, []string{"2021-22", "2022-23"}, res[0].Metadata.AvailableYears)
	assert.Contains(t, res[0].Metadata.Note, "2021-22, 2022-23")
}

func TestCropProductionTopAggregation(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		Aggregation: routing.AggregationTop,
		DataNeeded:  []routing.Source{routing.SourceCropProduction},
	}

	results, _ := e.Execute(context.Background(), params)
	res := results[string(routing.SourceCropProduction)]
	require.Len(t, res, 1)
	assert.Equal(t, "top_crops", res[0].Type)

	totals, ok := res[0].Data.([]cropTotal)
	require.True(t, ok)
	require.NotEmpty(t, totals)
	// Punjab rice across both years is the largest total.
	assert.Equal(t, "Punjab", totals[0].StateName)
	assert.Equal(t, "Rice", totals[0].Crop)
	assert.InDelta(t, 2325000, totals[0].Production, 0.01)
	for i := 1; i < len(totals); i++ {
		assert.GreaterOrEqual(t, totals[i-1].Production, totals[i].Production)
	}
}

func TestCropProductionAverageAggregation(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		States:      []string{"Haryana"},
		Crops:       []string{"Maize"},
		Aggregation: routing.AggregationAverage,
		DataNeeded:  []routing.Source{routing.SourceCropProduction},
	}

	results, _ := e.Execute(context.Background(), params)
	res := results[string(routing.SourceCropProduction)]
	require.Len(t, res, 1)
	assert.Equal(t, "averages", res[0].Type)

	avgs, ok := res[0].Data.([]stateAverage)
	require.True(t, ok)
	require.Len(t, avgs, 1)
	assert.Equal(t, "Haryana", avgs[0].StateName)
	assert.InDelta(t, 152000, avgs[0].Production, 0.01)
	assert.InDelta(t, 38000, avgs[0].Area, 0.01)
}

func TestResolveYearFiltersLastNFallsBackToMostRecent(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	// Calendar window 2025-2026 has no overlap with the dataset; the two most
	// recent available years are used instead.
	filters := resolveYearFilters([]string{"last 2 years"}, []int{2013, 2014, 2015}, now)
	assert.Equal(t, []string{"2014", "2015"}, filters)

	// Overlapping window keeps only the intersection.
	filters = resolveYearFilters([]string{"last 3 years"}, []int{2024, 2025}, now)
	assert.Equal(t, []string{"2024", "2025"}, filters)
}

func TestResolveYearFiltersMixedTokens(t *testing.T) {
	now := time.Now()
	filters := resolveYearFilters([]string{"2014", "2022-23", "not a year"}, nil, now)
	assert.Equal(t, []string{"2014", "2022"}, filters)
}

func TestRainfallAverageReportsYearsUsed(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		States:      []string{"Punjab"},
		Aggregation: routing.AggregationAverage,
		DataNeeded:  []routing.Source{routing.SourceRainfall},
	}

	results, citations := e.Execute(context.Background(), params)
	require.Len(t, citations, 1)
	assert.Equal(t, "Rainfall in India", citations[0].Dataset)

	res := results[string(routing.SourceRainfall)]
	require.Len(t, res, 1)
	assert.Equal(t, "average_rainfall", res[0].Type)
	assert.Equal(t, []string{"2020", "2021", "2022"}, res[0].YearsUsed)

	avgs, ok := res[0].Data.([]rainfallAverage)
	require.True(t, ok)
	require.Len(t, avgs, 1)
	assert.InDelta(t, (645.2+612.8+598.4)/3, avgs[0].AnnualRainfall, 0.001)
}

func TestRainfallNoMatchReturnsEmptyData(t *testing.T) {
	e := testEngine(&fakeClient{})
	params := routing.RouteParams{
		States:     []string{"Kerala"},
		DataNeeded: []routing.Source{routing.SourceRainfall},
	}

	results, _ := e.Execute(context.Background(), params)
	res := results[string(routing.SourceRainfall)]
	require.Len(t, res, 1)
	assert.Equal(t, "rainfall_data", res[0].Type)
	rows, ok := res[0].Data.([]datagov.RainfallRecord)
	require.True(t, ok)
	assert.Empty(t, rows)
	assert.Empty(t, res[0].YearsUsed)
}

func TestApedaMapsCropToProductCode(t *testing.T) {
	client := &fakeClient{apedaRows: []datagov.Row{
		{"State": "Punjab", "Production": 100.0},
		{"State": "Kerala", "Production": 50.0},
	}}
	e := testEngine(client)
	params := routing.RouteParams{
		States:     []string{"Punjab"},
		Crops:      []string{"Rice"},
		Years:      []string{"2023"},
		DataNeeded: []routing.Source{routing.SourceApedaProduction},
	}

	results, citations := e.Execute(context.Background(), params)
	assert.Equal(t, []string{"2023-24"}, client.apedaCalls)
	assert.Equal(t, "All", client.lastCategory)
	assert.Equal(t, "1011", client.lastProduct)

	require.Len(t, citations, 1)
	assert.Equal(t, "APEDA Production Statistics", citations[0].Dataset)

	res := results[string(routing.SourceApedaProduction)]
	require.Len(t, res, 1)
	rows, ok := res[0].Data.([]datagov.Row)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "Punjab", rows[0]["State"])
	assert.Equal(t, []string{"2023-24"}, res[0].YearsUsed)
}

func TestApedaDefaultsToMostRecentFinancialYear(t *testing.T) {
	client := &fakeClient{apedaRows: []datagov.Row{{"State": "Punjab"}}}
	e := testEngine(client)
	params := routing.RouteParams{DataNeeded: []routing.Source{routing.SourceApedaProduction}}

	e.Execute(context.Background(), params)
	assert.Equal(t, []string{"2023-24"}, client.apedaCalls)
	assert.Equal(t, "All", client.lastProduct)
}

func TestApedaFetchFailureYieldsEmptyResult(t *testing.T) {
	client := &fakeClient{apedaErr: errors.New("portal down")}
	e := testEngine(client)
	params := routing.RouteParams{DataNeeded: []routing.Source{routing.SourceApedaProduction}}

	results, citations := e.Execute(context.Background(), params)
	assert.Empty(t, citations)
	assert.Empty(t, results[string(routing.SourceApedaProduction)])
}

func TestFindProductCode(t *testing.T) {
	assert.Equal(t, "1011", findProductCode("Rice"))
	assert.Equal(t, "1013", findProductCode("  WHEAT "))
	assert.Equal(t, "All", findProductCode("dragonfruit"))
}

func TestToFiscalYears(t *testing.T) {
	assert.Equal(t, []string{"2019-20", "2023-24"}, toFiscalYears([]string{"2019", "2023-24"}))
	assert.Equal(t, []string{"1999-00"}, toFiscalYears([]string{"1999"}))
}

func TestDailyRainfallAverageAggregation(t *testing.T) {
	client := &fakeClient{dailyRows: []datagov.Row{
		{"State": "Punjab", "Avg_rainfall": 10.0},
		{"State": "Punjab", "Avg_rainfall": 20.0},
	}}
	e := testEngine(client)
	params := routing.RouteParams{
		States:      []string{"Punjab"},
		Years:       []string{"2022"},
		Aggregation: routing.AggregationAverage,
		DataNeeded:  []routing.Source{routing.SourceDailyRainfall},
	}

	results, citations := e.Execute(context.Background(), params)
	require.Len(t, citations, 1)
	assert.Equal(t, "Daily District-wise Rainfall Data", citations[0].Dataset)

	res := results[string(routing.SourceDailyRainfall)]
	require.Len(t, res, 1)
	assert.Equal(t, "daily_rainfall_summary", res[0].Type)

	summaries, ok := res[0].Data.([]dailyRainfallSummary)
	require.True(t, ok)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 15.0, summaries[0].AverageDailyRainfall, 0.001)
	assert.InDelta(t, 30.0, summaries[0].TotalRainfall, 0.001)
	assert.Equal(t, 2, summaries[0].Days)
}

func TestHistoricalRainfallResolvesSubdivision(t *testing.T) {
	client := &fakeClient{historicalRows: []datagov.Row{
		{"subdivision": "PUNJAB", "year": 1950.0, "annual": 600.0, "jun_sep": 450.0},
	}}
	e := testEngine(client)
	params := routing.RouteParams{
		States:     []string{"punjab"},
		Years:      []string{"1950"},
		DataNeeded: []routing.Source{routing.SourceHistoricalRainfall},
	}

	results, citations := e.Execute(context.Background(), params)
	assert.Equal(t, []string{"PUNJAB"}, client.subdivisions)
	require.Len(t, citations, 1)
	assert.Equal(t, "Historical Rainfall Data (1901-2015)", citations[0].Dataset)

	res := results[string(routing.SourceHistoricalRainfall)]
	require.Len(t, res, 1)
	assert.Equal(t, "historical_rainfall", res[0].Type)
}

func TestHistoricalRainfallNoStateSkipsFetch(t *testing.T) {
	client := &fakeClient{historicalRows: []datagov.Row{{"subdivision": "KERALA"}}}
	e := testEngine(client)
	params := routing.RouteParams{DataNeeded: []routing.Source{routing.SourceHistoricalRainfall}}

	results, citations := e.Execute(context.Background(), params)
	assert.Empty(t, client.subdivisions)
	assert.Empty(t, citations)
	assert.Empty(t, results[string(routing.SourceHistoricalRainfall)])
}

func TestHistoricalRainfallAverageUsesFullRangeWhenNoYears(t *testing.T) {
	client := &fakeClient{historicalRows: []datagov.Row{
		{"subdivision": "KERALA", "year": 1950.0, "annual": 3000.0, "jun_sep": 2000.0},
		{"subdivision": "KERALA", "year": 1951.0, "annual": 2800.0, "jun_sep": 1900.0},
	}}
	e := testEngine(client)
	params := routing.RouteParams{
		States:      []string{"Kerala"},
		Aggregation: routing.AggregationAverage,
		DataNeeded:  []routing.Source{routing.SourceHistoricalRainfall},
	}

	results, _ := e.Execute(context.Background(), params)
	res := results[string(routing.SourceHistoricalRainfall)]
	require.Len(t, res, 1)
	assert.Equal(t, "historical_rainfall_average", res[0].Type)
	assert.Len(t, res[0].YearsUsed, 115)

	avgs, ok := res[0].Data.([]historicalAverage)
	require.True(t, ok)
	require.Len(t, avgs, 1)
	assert.InDelta(t, 2900.0, avgs[0].AverageAnnualRainfall, 0.001)
}

func TestSubdivisionForUnmappedStateUppercases(t *testing.T) {
	assert.Equal(t, "HARYANA DELHI & CHANDIGARH", subdivisionFor("Haryana"))
	assert.Equal(t, "SIKKIM", subdivisionFor("sikkim"))
}
