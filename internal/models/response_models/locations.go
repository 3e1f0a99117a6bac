package response_models

type Location struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	VibeScore     int      `json:"vibe_score"`
	Photo         string   `json:"photo,omitempty"`
	AIVibeSummary string   `json:"ai_vibe_summary,omitempty"`
	Hashtags      []string `json:"hashtags"`
	AIProcessed   bool     `json:"ai_processed"`
	CreatedAt     int64    `json:"created_at"`
}

// SubmittedLocation is the immediate answer to a submission: the draft record
// plus non-fatal notices. Enrichment lands later through the feed.
type SubmittedLocation struct {
	Location
	PhotoDropped bool `json:"photo_dropped,omitempty"`
	AIQueued     bool `json:"ai_queued"`
}

type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"placeId"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
