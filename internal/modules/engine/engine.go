// Package engine executes validated routing decisions against the bundled
// datasets and the live data.gov.in / APEDA sources, producing shaped results
// plus citations for answer generation.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

var (
	citationCropProduction = Citation{
		Dataset: "District-wise Crop Production Statistics",
		Source:  "data.gov.in - Ministry of Agriculture",
		URL:     "https://www.data.gov.in/catalog/district-wise-season-wise-crop-production-statistics",
	}
	citationRainfall = Citation{
		Dataset: "Rainfall in India",
		Source:  "data.gov.in - India Meteorological Department (IMD)",
		URL:     "https://www.data.gov.in/catalog/rainfall-india",
	}
	citationApeda = Citation{
		Dataset: "APEDA Production Statistics",
		Source:  "APEDA - Ministry of Commerce",
		URL:     "https://agriexchange.apeda.gov.in/",
	}
	citationDailyRainfall = Citation{
		Dataset: "Daily District-wise Rainfall Data",
		Source:  "data.gov.in - National Water Informatics Centre",
		URL:     "https://www.data.gov.in/",
	}
	citationHistoricalRainfall = Citation{
		Dataset: "Historical Rainfall Data (1901-2015)",
		Source:  "data.gov.in - India Meteorological Department (IMD)",
		URL:     "https://www.data.gov.in/",
	}
)

// Engine runs source queries. The crop and rainfall datasets are held in
// memory and treated as immutable; live sources go through the injected
// client. Safe for concurrent use.
type Engine struct {
	crops    []datagov.CropRecord
	rainfall []datagov.RainfallRecord
	client   datagov.Client
	logger   *zap.Logger
	now      func() time.Time
}

func NewEngine(crops []datagov.CropRecord, rainfall []datagov.RainfallRecord, client datagov.Client, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		crops:    crops,
		rainfall: rainfall,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

// CropRecordCount reports the size of the in-memory crop dataset.
func (e *Engine) CropRecordCount() int { return len(e.crops) }

// RainfallRecordCount reports the size of the in-memory rainfall dataset.
func (e *Engine) RainfallRecordCount() int { return len(e.rainfall) }

// Execute runs every requested source and collects results keyed by source
// name. A failing source contributes an empty result set instead of aborting
// the others.
func (e *Engine) Execute(ctx context.Context, params routing.RouteParams) (Results, []Citation) {
	results := Results{}
	var citations []Citation

	if params.Needs(routing.SourceCropProduction) {
		res, cites := e.queryCropProduction(params)
		results[string(routing.SourceCropProduction)] = res
		citations = append(citations, cites...)
	}

	if params.Needs(routing.SourceApedaProduction) {
		res, cites := e.queryApeda(ctx, params)
		results[string(routing.SourceApedaProduction)] = nonNil(res)
		citations = append(citations, cites...)
	}

	if params.Needs(routing.SourceRainfall) {
		res, cites := e.queryRainfall(params)
		results[string(routing.SourceRainfall)] = res
		citations = append(citations, cites...)
	}

	if params.Needs(routing.SourceDailyRainfall) {
		res, cites := e.queryDailyRainfall(ctx, params)
		results[string(routing.SourceDailyRainfall)] = nonNil(res)
		citations = append(citations, cites...)
	}

	if params.Needs(routing.SourceHistoricalRainfall) {
		res, cites := e.queryHistoricalRainfall(ctx, params)
		results[string(routing.SourceHistoricalRainfall)] = nonNil(res)
		citations = append(citations, cites...)
	}

	return results, citations
}

// nonNil keeps a source that produced nothing visible as an empty list rather
// than null once serialized.
func nonNil(res []Result) []Result {
	if res == nil {
		return []Result{}
	}
	return res
}
