package http

type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	CampaignsCount    int    `json:"campaigns_count"`
	LivestreamsActive int    `json:"livestreams_active"`
}

type StatsResponse struct {
	TotalCampaigns  int     `json:"total_campaigns"`
	ActiveCampaigns int     `json:"active_campaigns"`
	TotalRaised     float64 `json:"total_raised"`
	LiveStreams     int     `json:"live_streams"`
	TotalSupporters int     `json:"total_supporters"`
}
