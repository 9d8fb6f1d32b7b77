package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

// cropTotal is an aggregated production total per state and crop.
type cropTotal struct {
	StateName  string  `json:"State_Name" bson:"State_Name"`
	Crop       string  `json:"Crop" bson:"Crop"`
	Production float64 `json:"Production" bson:"Production"`
}

// stateAverage is mean production and area per state.
type stateAverage struct {
	StateName  string  `json:"State_Name" bson:"State_Name"`
	Production float64 `json:"Production" bson:"Production"`
	Area       float64 `json:"Area" bson:"Area"`
}

// queryCropProduction filters the district-level dataset and applies the
// requested aggregation. The empty-result path always carries the full set of
// available years so the answer can explain what the dataset covers.
func (e *Engine) queryCropProduction(params routing.RouteParams) ([]Result, []Citation) {
	availableYears := uniqueSortedYears(e.crops)

	rows := filterCropRecords(e.crops, params.States, params.Districts, params.Crops)

	if len(params.Years) > 0 {
		filters := resolveYearFilters(params.Years, leadingYearInts(rows), e.now())
		if len(filters) > 0 {
			filtered := rows[:0:0]
			for _, r := range rows {
				if containsString(filters, fiscalLeadingYear(r.CropYear)) {
					filtered = append(filtered, r)
				}
			}
			rows = filtered
		}
	}

	var results []Result
	switch params.Aggregation {
	case routing.AggregationTop:
		results = append(results, Result{Type: "top_crops", Data: topCropTotals(rows, 10)})
	case routing.AggregationAverage:
		results = append(results, Result{Type: "averages", Data: stateAverages(rows)})
	default:
		meta := &Metadata{AvailableYears: availableYears}
		if len(availableYears) > 0 {
			meta.Note = fmt.Sprintf("Dataset contains data for years: %s", strings.Join(availableYears, ", "))
		} else {
			meta.AvailableYears = []string{"No data available"}
			meta.Note = "No data available"
		}
		results = append(results, Result{Type: "crop_data", Data: rows, Metadata: meta})
	}

	return results, []Citation{citationCropProduction}
}

func filterCropRecords(records []datagov.CropRecord, states, districts, crops []string) []datagov.CropRecord {
	out := make([]datagov.CropRecord, 0, len(records))
	for _, r := range records {
		if len(states) > 0 && !containsFold(states, r.StateName) {
			continue
		}
		if len(districts) > 0 && !containsFold(districts, r.DistrictName) {
			continue
		}
		if len(crops) > 0 && !containsFold(crops, r.Crop) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// uniqueSortedYears lists the distinct fiscal-year values present in the
// dataset, sorted ascending.
func uniqueSortedYears(records []datagov.CropRecord) []string {
	seen := map[string]bool{}
	var years []string
	for _, r := range records {
		if !seen[r.CropYear] {
			seen[r.CropYear] = true
			years = append(years, r.CropYear)
		}
	}
	sort.Strings(years)
	return years
}

// leadingYearInts extracts the distinct leading calendar years of the rows.
func leadingYearInts(records []datagov.CropRecord) []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range records {
		if n, err := strconv.Atoi(fiscalLeadingYear(r.CropYear)); err == nil && !seen[n] {
			seen[n] = true
			years = append(years, n)
		}
	}
	sort.Ints(years)
	return years
}

// topCropTotals sums production per state and crop and returns the n largest.
func topCropTotals(records []datagov.CropRecord, n int) []cropTotal {
	type key struct{ state, crop string }
	totals := map[key]float64{}
	for _, r := range records {
		totals[key{r.StateName, r.Crop}] += r.Production
	}

	out := make([]cropTotal, 0, len(totals))
	for k, sum := range totals {
		out = append(out, cropTotal{StateName: k.state, Crop: k.crop, Production: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Production != out[j].Production {
			return out[i].Production > out[j].Production
		}
		if out[i].StateName != out[j].StateName {
			return out[i].StateName < out[j].StateName
		}
		return out[i].Crop < out[j].Crop
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// stateAverages computes mean production and area per state.
func stateAverages(records []datagov.CropRecord) []stateAverage {
	type sums struct {
		production, area float64
		count            int
	}
	byState := map[string]*sums{}
	for _, r := range records {
		s := byState[r.StateName]
		if s == nil {
			s = &sums{}
			byState[r.StateName] = s
		}
		s.production += r.Production
		s.area += r.Area
		s.count++
	}

	out := make([]stateAverage, 0, len(byState))
	for state, s := range byState {
		out = append(out, stateAverage{
			StateName:  state,
			Production: s.production / float64(s.count),
			Area:       s.area / float64(s.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StateName < out[j].StateName })
	return out
}
