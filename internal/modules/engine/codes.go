package engine

import "strings"

// apedaProductCodes maps common crop names to APEDA product codes. "All" is
// the catalogue-wide sentinel the upstream portal accepts.
var apedaProductCodes = map[string]string{
	"rice":      "1011",
	"wheat":     "1013",
	"maize":     "1009",
	"bajra":     "1010",
	"jowar":     "1012",
	"barley":    "1014",
	"milk":      "1023",
	"mango":     "1050",
	"banana":    "1051",
	"apple":     "1052",
	"potato":    "1083",
	"onion":     "1084",
	"tomato":    "1085",
	"turmeric":  "1099",
	"chilli":    "1100",
	"coriander": "1101",
}

// findProductCode resolves a crop name to its APEDA product code,
// case-insensitively, falling back to the "All" sentinel.
func findProductCode(crop string) string {
	if code, ok := apedaProductCodes[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return code
	}
	return "All"
}

// stateSubdivisions maps states to the IMD meteorological subdivision used in
// the 1901-2015 historical rainfall series.
var stateSubdivisions = map[string]string{
	"punjab":         "PUNJAB",
	"haryana":        "HARYANA DELHI & CHANDIGARH",
	"delhi":          "HARYANA DELHI & CHANDIGARH",
	"uttar pradesh":  "EAST UTTAR PRADESH",
	"maharashtra":    "MADHYA MAHARASHTRA",
	"karnataka":      "COASTAL KARNATAKA",
	"west bengal":    "GANGETIC WEST BENGAL",
	"tamil nadu":     "TAMIL NADU & PUDUCHERRY",
	"kerala":         "KERALA",
	"rajasthan":      "WEST RAJASTHAN",
	"gujarat":        "GUJARAT REGION",
	"bihar":          "BIHAR",
	"odisha":         "ODISHA",
	"andhra pradesh": "COASTAL ANDHRA PRADESH",
}

// subdivisionFor returns the IMD subdivision for a state, defaulting to the
// uppercased state name when no mapping exists.
func subdivisionFor(state string) string {
	if sub, ok := stateSubdivisions[strings.ToLower(strings.TrimSpace(state))]; ok {
		return sub
	}
	return strings.ToUpper(strings.TrimSpace(state))
}
