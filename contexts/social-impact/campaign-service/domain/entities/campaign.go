package entities

import (
	"strings"
	"time"
)

type CampaignStatus string
type CampaignCategory string

const (
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusEnded  CampaignStatus = "ended"

	CampaignCategoryInvestigation CampaignCategory = "investigation"
	CampaignCategoryEnvironment   CampaignCategory = "environment"
	CampaignCategorySocialJustice CampaignCategory = "social_justice"
	CampaignCategoryEducation     CampaignCategory = "education"
	CampaignCategoryHealthcare    CampaignCategory = "healthcare"
	CampaignCategoryCommunity     CampaignCategory = "community"
	CampaignCategoryOther         CampaignCategory = "other"
)

type Campaign struct {
	CampaignID      string
	Title           string
	Description     string
	GoalAmount      float64
	RaisedAmount    float64
	DurationDays    int
	Category        CampaignCategory
	Tags            []string
	Status          CampaignStatus
	CreatedAt       time.Time
	EndDate         time.Time
	CreatorID       string
	ImageURL        string
	SupportersCount int
	ShareURL        string
}

func (c Campaign) ValidateBasics() bool {
	title := strings.TrimSpace(c.Title)
	description := strings.TrimSpace(c.Description)

	return title != "" &&
		len(title) <= 100 &&
		len(description) >= 10 &&
		len(description) <= 5000 &&
		c.GoalAmount > 0 &&
		c.DurationDays >= 1 &&
		c.DurationDays <= 365 &&
		IsSupportedCategory(c.Category)
}

func IsSupportedCategory(value CampaignCategory) bool {
	switch value {
	case CampaignCategoryInvestigation,
		CampaignCategoryEnvironment,
		CampaignCategorySocialJustice,
		CampaignCategoryEducation,
		CampaignCategoryHealthcare,
		CampaignCategoryCommunity,
		CampaignCategoryOther:
		return true
	default:
		return false
	}
}
