// Package datagov fetches agricultural statistics from data.gov.in and the
// APEDA agri-exchange portal. Upstream payloads are normalized into either
// typed crop records or loosely-shaped rows, depending on how stable the
// source schema is.
package datagov

import "context"

// CropRecord is a district-level crop production row. Field names follow the
// data.gov.in catalog so cached raw results stay recognizable.
type CropRecord struct {
	StateName    string  `json:"State_Name" bson:"State_Name"`
	DistrictName string  `json:"District_Name" bson:"District_Name"`
	CropYear     string  `json:"Crop_Year" bson:"Crop_Year"` // fiscal format, e.g. "2014-15"
	Season       string  `json:"Season" bson:"Season"`
	Crop         string  `json:"Crop" bson:"Crop"`
	Area         float64 `json:"Area" bson:"Area"`
	Production   float64 `json:"Production" bson:"Production"`
}

// RainfallRecord is a state-level annual rainfall row from the bundled sample.
type RainfallRecord struct {
	State           string  `json:"State" bson:"State"`
	Year            int     `json:"Year" bson:"Year"`
	AnnualRainfall  float64 `json:"Annual_Rainfall" bson:"Annual_Rainfall"`
	MonsoonRainfall float64 `json:"Monsoon_Rainfall" bson:"Monsoon_Rainfall"`
}

// Row is a schemaless record from an upstream source whose column set varies
// (APEDA, daily rainfall, historical rainfall).
type Row map[string]interface{}

// Client is the retrieval surface the query engine depends on. Implementations
// must treat every error as non-fatal to the overall query.
type Client interface {
	// FetchCropProduction pulls district-level crop production rows from
	// data.gov.in for a fixed set of states and recent years.
	FetchCropProduction(ctx context.Context) ([]CropRecord, error)

	// FetchAPEDA posts to the APEDA production endpoint for one financial year.
	FetchAPEDA(ctx context.Context, finYear, category, productCode string) ([]Row, error)

	// FetchDailyRainfall queries district-wise daily rainfall (2019-2024).
	// Empty filter values are omitted from the request.
	FetchDailyRainfall(ctx context.Context, state, district, year string, limit int) ([]Row, error)

	// FetchHistoricalRainfall queries subdivision-wise rainfall (1901-2015).
	FetchHistoricalRainfall(ctx context.Context, subdivision, year string, limit int) ([]Row, error)
}
