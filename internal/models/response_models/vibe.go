package response_models

// VibeAnnotation mirrors the JSON the model is instructed to emit, and is the
// wire shape of the annotation endpoint's data field.
type VibeAnnotation struct {
	VibeSummary string   `json:"vibeSummary"`
	AIScore     int      `json:"aiScore"`
	Hashtags    []string `json:"hashtags"`
}

type AnalyzeVibeResponse struct {
	Success bool           `json:"success"`
	Data    VibeAnnotation `json:"data"`
}

type HealthChecks struct {
	Store      string `json:"store"`
	Annotation string `json:"annotation"`
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Checks    HealthChecks `json:"checks"`
	Timestamp string       `json:"timestamp"`
}
