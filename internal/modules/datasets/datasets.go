// Package datasets serves the static catalog of bundled data sources.
package datasets

import (
	"github.com/gin-gonic/gin"

	"github.com/project-samarth/core/internal/pkg/response"
)

type dataset struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

var catalog = []dataset{
	{
		Name:        "District-wise Crop Production Statistics",
		Source:      "Ministry of Agriculture & Farmers Welfare",
		URL:         "https://www.data.gov.in/catalog/district-wise-season-wise-crop-production-statistics",
		Description: "District, crop, season and year wise data on crop area and production",
		Fields:      []string{"State_Name", "District_Name", "Crop_Year", "Season", "Crop", "Area", "Production"},
	},
	{
		Name:        "Rainfall in India",
		Source:      "India Meteorological Department (IMD)",
		URL:         "https://www.data.gov.in/catalog/rainfall-india",
		Description: "State-wise and sub-division wise rainfall data",
		Fields:      []string{"State", "Year", "Annual_Rainfall", "Monsoon_Rainfall"},
	},
}

func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/datasets", func(c *gin.Context) {
		response.OK(c, gin.H{"datasets": catalog})
	})
}
