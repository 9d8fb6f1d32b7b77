package engine

// Citation names the dataset a result came from, for answer attribution.
type Citation struct {
	Dataset string `json:"dataset" bson:"dataset"`
	Source  string `json:"source" bson:"source"`
	URL     string `json:"url" bson:"url"`
}

// Metadata explains an empty or partial result instead of leaving the caller
// with a bare empty slice. AvailableYears lists what the source actually has.
type Metadata struct {
	AvailableYears []string `json:"available_years" bson:"available_years"`
	Note           string   `json:"note" bson:"note"`
}

// Result is one shaped output of a source query. Data holds rows whose schema
// depends on the result type; the Type tag tells the answer generator how to
// read them.
type Result struct {
	Type      string      `json:"type" bson:"type"`
	Data      interface{} `json:"data" bson:"data"`
	Metadata  *Metadata   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	YearsUsed []string    `json:"years_used,omitempty" bson:"years_used,omitempty"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
}

// Results groups source outputs by source name, ready for caching and answer
// generation.
type Results map[string][]Result
