package datagov

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	baseURL                      = "https://api.data.gov.in/resource"
	cropResourceID               = "35be999b-0208-4354-b557-f6ca9a5355de"
	dailyRainfallResourceID      = "6c05cd1b-ed59-40c2-bc31-e314f39c6971"
	historicalRainfallResourceID = "440dbca7-86ce-4bf6-b1af-83af2855757e"
	apedaURL                     = "https://agriexchange.apeda.gov.in/Production/IndiaCat/GetIndiaProductionCatObject"
)

// HTTPClient talks to the live portals. Safe for concurrent use; the inner
// http.Client is shared across requests.
type HTTPClient struct {
	apiKey string
	http   *http.Client
	logger *zap.Logger
}

// NewHTTPClient builds a portal client with per-call timeouts.
func NewHTTPClient(apiKey string, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

var cropFetchStates = []string{"Punjab", "Haryana", "Karnataka", "Maharashtra"}
var cropFetchYears = []string{"2015", "2014", "2013"}

// FetchCropProduction pulls real district-level rows, state by state and year
// by year. Partial failures are logged and skipped; whatever was fetched is
// returned.
func (c *HTTPClient) FetchCropProduction(ctx context.Context) ([]CropRecord, error) {
	var all []CropRecord
	for _, state := range cropFetchStates {
		for _, year := range cropFetchYears {
			records, err := c.fetchCropPage(ctx, state, year)
			if err != nil {
				c.logger.Warn("crop production fetch failed",
					zap.String("state", state), zap.String("year", year), zap.Error(err))
				continue
			}
			all = append(all, records...)
		}
	}
	return all, nil
}

func (c *HTTPClient) fetchCropPage(ctx context.Context, state, year string) ([]CropRecord, error) {
	params := neturl.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", "100")
	params.Set("filters[state_name]", state)
	params.Set("filters[crop_year]", year)

	var payload struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := c.getJSON(ctx, baseURL+"/"+cropResourceID, params, &payload); err != nil {
		return nil, err
	}

	records := make([]CropRecord, 0, len(payload.Records))
	for _, raw := range payload.Records {
		cropYear := asString(raw["crop_year"])
		records = append(records, CropRecord{
			StateName:    asString(raw["state_name"]),
			DistrictName: asString(raw["district_name"]),
			CropYear:     toFiscalYear(cropYear),
			Season:       asString(raw["season"]),
			Crop:         asString(raw["crop"]),
			Area:         asFloat(raw["area_"]),
			Production:   asFloat(raw["production_"]),
		})
	}
	return records, nil
}

// FetchAPEDA posts to the APEDA production endpoint. Column names vary by
// report; state/production/share columns are renamed to canonical keys and
// the query context (year, category, code) is stamped onto every row.
func (c *HTTPClient) FetchAPEDA(ctx context.Context, finYear, category, productCode string) ([]Row, error) {
	if category == "" {
		category = "All"
	}
	if productCode == "" {
		productCode = "All"
	}

	body, _ := json.Marshal(map[string]string{
		"Category":       category,
		"Financial_Year": finYear,
		"product_code":   productCode,
		"ReportType":     "1",
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apedaURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("apeda status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("apeda decode: %w", err)
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row := Row{}
		for col, val := range item {
			key := col
			colLower := strings.ToLower(strings.TrimSpace(col))
			switch {
			case strings.HasPrefix(colLower, "state"):
				key = "State"
			case strings.Contains(colLower, "production"):
				key = "Production"
				val = asFloat(val)
			case strings.Contains(colLower, "percent"):
				key = "Percent_Share"
			}
			row[key] = val
		}
		row["Financial_Year"] = finYear
		row["Category"] = category
		row["Product_Code"] = productCode
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchDailyRainfall queries the district-wise daily rainfall resource.
func (c *HTTPClient) FetchDailyRainfall(ctx context.Context, state, district, year string, limit int) ([]Row, error) {
	params := neturl.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	if state != "" {
		params.Set("filters[State]", state)
	}
	if district != "" {
		params.Set("filters[District]", district)
	}
	if year != "" {
		params.Set("filters[Year]", year)
	}

	var payload struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := c.getJSON(ctx, baseURL+"/"+dailyRainfallResourceID, params, &payload); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(payload.Records))
	for _, raw := range payload.Records {
		row := Row(raw)
		if v, ok := row["Avg_rainfall"]; ok {
			row["Avg_rainfall"] = asFloat(v)
		}
		if v, ok := row["Year"]; ok {
			row["Year"] = asFloat(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchHistoricalRainfall queries the subdivision-wise rainfall resource.
// All columns except the subdivision name are numeric.
func (c *HTTPClient) FetchHistoricalRainfall(ctx context.Context, subdivision, year string, limit int) ([]Row, error) {
	params := neturl.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	if subdivision != "" {
		params.Set("filters[subdivision]", subdivision)
	}
	if year != "" {
		params.Set("filters[year]", year)
	}

	var payload struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := c.getJSON(ctx, baseURL+"/"+historicalRainfallResourceID, params, &payload); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(payload.Records))
	for _, raw := range payload.Records {
		row := Row{}
		for col, val := range raw {
			if col == "subdivision" {
				row[col] = val
				continue
			}
			row[col] = asFloat(val)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, params neturl.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// toFiscalYear formats "2014" as "2014-15". Already-fiscal strings pass
// through unchanged.
func toFiscalYear(year string) string {
	year = strings.TrimSpace(year)
	if year == "" || strings.Contains(year, "-") {
		return year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	next := strconv.Itoa(y + 1)
	return fmt.Sprintf("%d-%s", y, next[len(next)-2:])
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
