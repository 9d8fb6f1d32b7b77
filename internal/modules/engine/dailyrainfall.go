package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

const dailyRainfallRowCap = 100

// dailyRainfallSummary is aggregated daily rainfall per state.
type dailyRainfallSummary struct {
	State                string  `json:"State" bson:"State"`
	AverageDailyRainfall float64 `json:"Average_Daily_Rainfall_mm" bson:"Average_Daily_Rainfall_mm"`
	TotalRainfall        float64 `json:"Total_Rainfall_mm" bson:"Total_Rainfall_mm"`
	Days                 int     `json:"Days" bson:"Days"`
}

// queryDailyRainfall fetches district-wise daily rainfall for every
// state x district x year combination the routing decision names. Raw output
// is capped so a broad question cannot flood the cache.
func (e *Engine) queryDailyRainfall(ctx context.Context, params routing.RouteParams) ([]Result, []Citation) {
	states := orNone(params.States)
	districts := orNone(params.Districts)
	years := orNone(params.Years)

	var all []datagov.Row
	for _, state := range states {
		for _, district := range districts {
			for _, year := range years {
				rows, err := e.client.FetchDailyRainfall(ctx, state, district, year, dailyRainfallRowCap)
				if err != nil {
					e.logger.Warn("daily rainfall fetch failed",
						zap.String("state", state), zap.String("district", district),
						zap.String("year", year), zap.Error(err))
					continue
				}
				all = append(all, rows...)
			}
		}
	}

	if len(all) == 0 {
		return nil, nil
	}

	var results []Result
	if params.Aggregation == routing.AggregationAverage {
		results = append(results, Result{
			Type:      "daily_rainfall_summary",
			Data:      dailyRainfallSummaries(all),
			YearsUsed: params.Years,
		})
	} else {
		if len(all) > dailyRainfallRowCap {
			all = all[:dailyRainfallRowCap]
		}
		results = append(results, Result{Type: "daily_rainfall", Data: all, YearsUsed: params.Years})
	}

	return results, []Citation{citationDailyRainfall}
}

// orNone substitutes a single empty element for a missing filter so the fetch
// loops still run once with no filter applied.
func orNone(values []string) []string {
	if len(values) == 0 {
		return []string{""}
	}
	return values
}

func dailyRainfallSummaries(rows []datagov.Row) []dailyRainfallSummary {
	type sums struct {
		total float64
		days  int
	}
	byState := map[string]*sums{}
	for _, row := range rows {
		state, _ := row["State"].(string)
		rainfall, _ := row["Avg_rainfall"].(float64)
		s := byState[state]
		if s == nil {
			s = &sums{}
			byState[state] = s
		}
		s.total += rainfall
		s.days++
	}

	out := make([]dailyRainfallSummary, 0, len(byState))
	for state, s := range byState {
		out = append(out, dailyRainfallSummary{
			State:                state,
			AverageDailyRainfall: s.total / float64(s.days),
			TotalRainfall:        s.total,
			Days:                 s.days,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
