package routing

// Source identifies one of the queryable datasets. The values are a fixed
// vocabulary shared with the router prompt and the cache TTL policy.
type Source string

const (
	SourceCropProduction     Source = "crop_production"     // district-level, 2013-2015
	SourceApedaProduction    Source = "apeda_production"    // state-level, 2019-2024
	SourceRainfall           Source = "rainfall"            // bundled sample, fallback
	SourceDailyRainfall      Source = "daily_rainfall"      // district-level, 2019-2024
	SourceHistoricalRainfall Source = "historical_rainfall" // state-level, 1901-2015
)

var knownSources = map[Source]bool{
	SourceCropProduction:     true,
	SourceApedaProduction:    true,
	SourceRainfall:           true,
	SourceDailyRainfall:      true,
	SourceHistoricalRainfall: true,
}

// Comparison modes the router may emit.
const (
	ComparisonTemporal    = "temporal"
	ComparisonSpatial     = "spatial"
	ComparisonCorrelation = "correlation"
)

// Aggregation modes the router may emit.
const (
	AggregationSum     = "sum"
	AggregationAverage = "average"
	AggregationTop     = "top"
	AggregationTrend   = "trend"
)

// RouteParams is the structured routing decision for one question. It is the
// contract between the source router and the query engine; everything the
// model returns is validated into this closed shape before use.
type RouteParams struct {
	States     []string `json:"states" bson:"states"`
	Districts  []string `json:"districts" bson:"districts"`
	Crops      []string `json:"crops" bson:"crops"`
	CropTypes  []string `json:"crop_types" bson:"crop_types"`
	Years      []string `json:"years" bson:"years"`
	DataNeeded []Source `json:"data_needed" bson:"data_needed"`

	ComparisonType string `json:"comparison_type,omitempty" bson:"comparison_type,omitempty"`
	Aggregation    string `json:"aggregation,omitempty" bson:"aggregation,omitempty"`
	ApedaCategory  string `json:"apeda_category,omitempty" bson:"apeda_category,omitempty"`
	ProductCode    string `json:"product_code,omitempty" bson:"product_code,omitempty"`
	RainfallType   string `json:"rainfall_type,omitempty" bson:"rainfall_type,omitempty"`
}

// FallbackParams is the fixed routing decision substituted when the model
// output cannot be used. It queries the district crop data plus the sample
// rainfall set with no entity filters.
func FallbackParams() RouteParams {
	return RouteParams{
		States:     []string{},
		Districts:  []string{},
		Crops:      []string{},
		CropTypes:  []string{},
		Years:      []string{},
		DataNeeded: []Source{SourceCropProduction, SourceRainfall},
	}
}

// Validate normalizes a decoded parameter set: nil slices become empty,
// unknown data_needed values are dropped, and an empty data_needed falls back
// to the fixed default so the invariant "data_needed is non-empty" holds.
func (p *RouteParams) Validate() {
	if p.States == nil {
		p.States = []string{}
	}
	if p.Districts == nil {
		p.Districts = []string{}
	}
	if p.Crops == nil {
		p.Crops = []string{}
	}
	if p.CropTypes == nil {
		p.CropTypes = []string{}
	}
	if p.Years == nil {
		p.Years = []string{}
	}

	valid := make([]Source, 0, len(p.DataNeeded))
	for _, s := range p.DataNeeded {
		if knownSources[s] {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		valid = []Source{SourceCropProduction, SourceRainfall}
	}
	p.DataNeeded = valid
}

// Needs reports whether the given source was requested.
func (p *RouteParams) Needs(s Source) bool {
	for _, v := range p.DataNeeded {
		if v == s {
			return true
		}
	}
	return false
}
