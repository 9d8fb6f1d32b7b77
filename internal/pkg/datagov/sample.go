package datagov

// SampleCropData is the bundled district-level crop production dataset, used
// when the live API is disabled or unreachable.
func SampleCropData() []CropRecord {
	return []CropRecord{
		{StateName: "Punjab", DistrictName: "Amritsar", CropYear: "2022-23", Season: "Kharif", Crop: "Rice", Area: 125000, Production: 550000},
		{StateName: "Punjab", DistrictName: "Ludhiana", CropYear: "2022-23", Season: "Kharif", Crop: "Rice", Area: 145000, Production: 635000},
		{StateName: "Punjab", DistrictName: "Amritsar", CropYear: "2022-23", Season: "Rabi", Crop: "Wheat", Area: 185000, Production: 925000},
		{StateName: "Haryana", DistrictName: "Karnal", CropYear: "2022-23", Season: "Kharif", Crop: "Rice", Area: 98000, Production: 420000},
		{StateName: "Haryana", DistrictName: "Hisar", CropYear: "2022-23", Season: "Kharif", Crop: "Rice", Area: 76000, Production: 298000},
		{StateName: "Punjab", DistrictName: "Amritsar", CropYear: "2021-22", Season: "Kharif", Crop: "Rice", Area: 122000, Production: 530000},
		{StateName: "Punjab", DistrictName: "Ludhiana", CropYear: "2021-22", Season: "Kharif", Crop: "Rice", Area: 140000, Production: 610000},
		{StateName: "Haryana", DistrictName: "Karnal", CropYear: "2021-22", Season: "Kharif", Crop: "Rice", Area: 95000, Production: 405000},
		{StateName: "Punjab", DistrictName: "Patiala", CropYear: "2022-23", Season: "Kharif", Crop: "Maize", Area: 45000, Production: 180000},
		{StateName: "Haryana", DistrictName: "Ambala", CropYear: "2022-23", Season: "Kharif", Crop: "Maize", Area: 38000, Production: 152000},
	}
}

// SampleRainfallData is the bundled state-level rainfall dataset, the
// fallback source when a rainfall question names no specific year.
func SampleRainfallData() []RainfallRecord {
	return []RainfallRecord{
		{State: "Punjab", Year: 2022, AnnualRainfall: 645.2, MonsoonRainfall: 487.3},
		{State: "Punjab", Year: 2021, AnnualRainfall: 612.8, MonsoonRainfall: 465.1},
		{State: "Punjab", Year: 2020, AnnualRainfall: 598.4, MonsoonRainfall: 442.7},
		{State: "Haryana", Year: 2022, AnnualRainfall: 558.7, MonsoonRainfall: 423.4},
		{State: "Haryana", Year: 2021, AnnualRainfall: 542.3, MonsoonRainfall: 408.9},
		{State: "Haryana", Year: 2020, AnnualRainfall: 524.1, MonsoonRainfall: 395.2},
		{State: "Maharashtra", Year: 2022, AnnualRainfall: 1124.5, MonsoonRainfall: 945.8},
		{State: "Maharashtra", Year: 2021, AnnualRainfall: 1098.3, MonsoonRainfall: 918.7},
	}
}
