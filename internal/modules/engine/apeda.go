package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/routing"
	"github.com/project-samarth/core/internal/pkg/datagov"
)

// queryApeda pulls state-level production from the APEDA portal, one request
// per financial year. Fetch errors degrade to an empty result for that year.
func (e *Engine) queryApeda(ctx context.Context, params routing.RouteParams) ([]Result, []Citation) {
	years := params.Years
	if len(years) == 0 {
		years = []string{"2023-24"}
	}
	finYears := toFiscalYears(years)

	category := params.ApedaCategory
	if category == "" {
		category = "All"
	}

	productCode := params.ProductCode
	if (productCode == "" || productCode == "All") && len(params.Crops) > 0 {
		productCode = findProductCode(params.Crops[0])
	}
	if productCode == "" {
		productCode = "All"
	}

	var all []datagov.Row
	for _, finYear := range finYears {
		rows, err := e.client.FetchAPEDA(ctx, finYear, category, productCode)
		if err != nil {
			e.logger.Warn("apeda fetch failed", zap.String("fin_year", finYear), zap.Error(err))
			continue
		}
		all = append(all, rows...)
	}

	if len(all) == 0 {
		return nil, nil
	}

	if len(params.States) > 0 {
		filtered := all[:0:0]
		for _, row := range all {
			state, _ := row["State"].(string)
			if containsFold(params.States, strings.TrimSpace(state)) {
				filtered = append(filtered, row)
			}
		}
		all = filtered
	}

	results := []Result{{Type: "apeda_production", Data: all, YearsUsed: finYears}}
	return results, []Citation{citationApeda}
}
