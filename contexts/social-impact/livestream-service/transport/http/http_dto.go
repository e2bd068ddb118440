package http

type StartStreamRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

type LiveStreamResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	StreamURL   string `json:"stream_url"`
	RTMPURL     string `json:"rtmp_url"`
	StreamKey   string `json:"stream_key"`
	ViewerCount int    `json:"viewer_count"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at,omitempty"`
	CreatorID   string `json:"creator_id"`
	ChatEnabled bool   `json:"chat_enabled"`
	IsPublic    bool   `json:"is_public"`
}

type EndStreamResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	StreamID        string `json:"stream_id"`
	DurationMinutes int    `json:"duration_minutes"`
	PeakViewers     int    `json:"peak_viewers"`
}

type ViewerCountResponse struct {
	Success     bool `json:"success"`
	ViewerCount int  `json:"viewer_count"`
}
