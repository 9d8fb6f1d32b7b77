package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

// rainfallAverage is mean annual and monsoon rainfall per state.
type rainfallAverage struct {
	State           string  `json:"State" bson:"State"`
	AnnualRainfall  float64 `json:"Annual_Rainfall" bson:"Annual_Rainfall"`
	MonsoonRainfall float64 `json:"Monsoon_Rainfall" bson:"Monsoon_Rainfall"`
}

// queryRainfall runs against the bundled state-level rainfall sample. The
// years actually present after filtering are reported back so the answer can
// say which years an average covers.
func (e *Engine) queryRainfall(params routing.RouteParams) ([]Result, []Citation) {
	rows := make([]datagov.RainfallRecord, 0, len(e.rainfall))
	for _, r := range e.rainfall {
		if len(params.States) > 0 && !containsFold(params.States, r.State) {
			continue
		}
		rows = append(rows, r)
	}

	if years := yearInts(params.Years); len(years) > 0 {
		filtered := rows[:0:0]
		for _, r := range rows {
			if containsInt(years, r.Year) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	yearsUsed := usedYears(rows)

	var results []Result
	switch {
	case len(rows) == 0:
		results = append(results, Result{Type: "rainfall_data", Data: []datagov.RainfallRecord{}, YearsUsed: yearsUsed})
	case params.Aggregation == routing.AggregationAverage:
		results = append(results, Result{
			Type:      "average_rainfall",
			Data:      rainfallAverages(rows),
			YearsUsed: yearsUsed,
			Note:      fmt.Sprintf("Averages calculated from %d years: %s", len(yearsUsed), strings.Join(yearsUsed, ", ")),
		})
	default:
		results = append(results, Result{Type: "rainfall_data", Data: rows, YearsUsed: yearsUsed})
	}

	return results, []Citation{citationRainfall}
}

func usedYears(records []datagov.RainfallRecord) []string {
	seen := map[int]bool{}
	var years []int
	for _, r := range records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)

	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func rainfallAverages(records []datagov.RainfallRecord) []rainfallAverage {
	type sums struct {
		annual, monsoon float64
		count           int
	}
	byState := map[string]*sums{}
	for _, r := range records {
		s := byState[r.State]
		if s == nil {
			s = &sums{}
			byState[r.State] = s
		}
		s.annual += r.AnnualRainfall
		s.monsoon += r.MonsoonRainfall
		s.count++
	}

	out := make([]rainfallAverage, 0, len(byState))
	for state, s := range byState {
		out = append(out, rainfallAverage{
			State:           state,
			AnnualRainfall:  s.annual / float64(s.count),
			MonsoonRainfall: s.monsoon / float64(s.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
