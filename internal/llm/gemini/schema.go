package gemini

// Schema is the subset of the Gemini response-schema vocabulary this client
// needs to pin down the analysis result shape.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Minimum     *float64          `json:"minimum,omitempty"`
	Maximum     *float64          `json:"maximum,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
}

func num(v float64) *float64 { return &v }

// ResultSchema returns the strict response schema the model must honor:
// enumerated status/severity/priority fields and bounded numeric ranges.
func ResultSchema() Schema {
	severity := Schema{Type: "STRING", Enum: []string{"low", "medium", "high"}}

	return Schema{
		Type: "OBJECT",
		Properties: map[string]Schema{
			"overallScore": {Type: "NUMBER", Minimum: num(0), Maximum: num(100)},
			"status":       {Type: "STRING", Enum: []string{"excellent", "good", "fair", "poor"}},
			"issues": {
				Type: "ARRAY",
				Items: &Schema{
					Type: "OBJECT",
					Properties: map[string]Schema{
						"id":          {Type: "STRING"},
						"title":       {Type: "STRING"},
						"description": {Type: "STRING"},
						"severity":    severity,
						"category":    {Type: "STRING"},
						"impact":      {Type: "STRING"},
					},
				},
			},
			"metrics": {
				Type: "OBJECT",
				Properties: map[string]Schema{
					"averageFps":        {Type: "NUMBER"},
					"frameTimeVariance": {Type: "NUMBER"},
					"fps":               {Type: "ARRAY", Items: &Schema{Type: "NUMBER"}},
					"memoryUsage":       {Type: "ARRAY", Items: &Schema{Type: "NUMBER"}},
					"cpuUsage":          {Type: "ARRAY", Items: &Schema{Type: "NUMBER"}},
					"timestamps":        {Type: "ARRAY", Items: &Schema{Type: "STRING", Description: "ISO 8601 format"}},
					"lagSpikes": {
						Type: "ARRAY",
						Items: &Schema{
							Type: "OBJECT",
							Properties: map[string]Schema{
								"timestamp": {Type: "STRING"},
								"duration":  {Type: "NUMBER"},
								"severity":  {Type: "NUMBER", Minimum: num(0), Maximum: num(10)},
							},
						},
					},
				},
			},
			"recommendations": {
				Type: "ARRAY",
				Items: &Schema{
					Type: "OBJECT",
					Properties: map[string]Schema{
						"id":          {Type: "STRING"},
						"title":       {Type: "STRING"},
						"description": {Type: "STRING"},
						"priority":    severity,
						"category":    {Type: "STRING"},
						"icon":        {Type: "STRING"},
						"learnmore":   {Type: "STRING", Description: "Valid link to a real website related to the recommendation or issue"},
					},
				},
			},
		},
	}
}
