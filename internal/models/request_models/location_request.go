package request_models

// CreateLocationRequest is a submission from the add-location flow. Lat/Lng
// are optional: when the client picked an explicit suggestion it sends the
// resolved coordinates, otherwise the server geocodes the name itself.
type CreateLocationRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Photo       string   `json:"photo"`
}

type AnalyzeVibeRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

type AnalyticsEventRequest struct {
	EventType    string                 `json:"event_type" binding:"required"`
	LocationID   string                 `json:"location_id"`
	LocationName string                 `json:"location_name"`
	Metadata     map[string]interface{} `json:"metadata"`
}
