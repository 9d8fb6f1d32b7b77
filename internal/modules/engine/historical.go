package engine

import (
	"context"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

const historicalRainfallRowCap = 100

// historicalAverage is mean annual and monsoon rainfall per IMD subdivision.
type historicalAverage struct {
	Subdivision            string  `json:"Subdivision" bson:"Subdivision"`
	AverageAnnualRainfall  float64 `json:"Average_Annual_Rainfall_mm" bson:"Average_Annual_Rainfall_mm"`
	AverageMonsoonRainfall float64 `json:"Average_Monsoon_Rainfall_mm" bson:"Average_Monsoon_Rainfall_mm"`
}

// queryHistoricalRainfall fetches the 1901-2015 subdivision series for each
// named state. Without a state there is nothing to resolve a subdivision
// from, so no fetch happens.
func (e *Engine) queryHistoricalRainfall(ctx context.Context, params routing.RouteParams) ([]Result, []Citation) {
	var all []datagov.Row
	for _, state := range params.States {
		subdivision := subdivisionFor(state)
		years := params.Years
		if len(years) == 0 {
			years = []string{""}
		}
		for _, year := range years {
			rows, err := e.client.FetchHistoricalRainfall(ctx, subdivision, year, historicalRainfallRowCap)
			if err != nil {
				e.logger.Warn("historical rainfall fetch failed",
					zap.String("subdivision", subdivision), zap.String("year", year), zap.Error(err))
				continue
			}
			all = append(all, rows...)
		}
	}

	if len(all) == 0 {
		return nil, nil
	}

	if years := yearInts(params.Years); len(years) > 0 {
		filtered := all[:0:0]
		for _, row := range all {
			year, _ := row["year"].(float64)
			if containsInt(years, int(year)) {
				filtered = append(filtered, row)
			}
		}
		all = filtered
	}

	var results []Result
	if params.Aggregation == routing.AggregationAverage {
		yearsUsed := params.Years
		if len(yearsUsed) == 0 {
			yearsUsed = fullHistoricalRange()
		}
		results = append(results, Result{
			Type:      "historical_rainfall_average",
			Data:      historicalAverages(all),
			YearsUsed: yearsUsed,
		})
	} else {
		if len(all) > historicalRainfallRowCap {
			all = all[:historicalRainfallRowCap]
		}
		results = append(results, Result{Type: "historical_rainfall", Data: all, YearsUsed: params.Years})
	}

	return results, []Citation{citationHistoricalRainfall}
}

func fullHistoricalRange() []string {
	out := make([]string, 0, 115)
	for y := 1901; y <= 2015; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func historicalAverages(rows []datagov.Row) []historicalAverage {
	type sums struct {
		annual, monsoon float64
		count           int
	}
	bySubdivision := map[string]*sums{}
	for _, row := range rows {
		subdivision, _ := row["subdivision"].(string)
		annual, _ := row["annual"].(float64)
		monsoon, _ := row["jun_sep"].(float64)
		s := bySubdivision[subdivision]
		if s == nil {
			s = &sums{}
			bySubdivision[subdivision] = s
		}
		s.annual += annual
		s.monsoon += monsoon
		s.count++
	}

	out := make([]historicalAverage, 0, len(bySubdivision))
	for subdivision, s := range bySubdivision {
		out = append(out, historicalAverage{
			Subdivision:            subdivision,
			AverageAnnualRainfall:  s.annual / float64(s.count),
			AverageMonsoonRainfall: s.monsoon / float64(s.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subdivision < out[j].Subdivision })
	return out
}
