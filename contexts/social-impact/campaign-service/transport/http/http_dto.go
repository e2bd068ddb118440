package http

type CreateCampaignRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	GoalAmount   float64  `json:"goal_amount"`
	DurationDays int      `json:"duration_days"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"image_url,omitempty"`
}

type CampaignResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	GoalAmount      float64  `json:"goal_amount"`
	RaisedAmount    float64  `json:"raised_amount"`
	DurationDays    int      `json:"duration_days"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
	EndDate         string   `json:"end_date"`
	CreatorID       string   `json:"creator_id"`
	ImageURL        string   `json:"image_url,omitempty"`
	SupportersCount int      `json:"supporters_count"`
	ShareURL        string   `json:"share_url"`
}

type DonationReceiptResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	CampaignID    string  `json:"campaign_id"`
	NewTotal      float64 `json:"new_total"`
	TransactionID string  `json:"transaction_id"`
}
