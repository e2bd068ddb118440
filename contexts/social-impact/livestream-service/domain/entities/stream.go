package entities

import (
	"strings"
	"time"
)

type StreamStatus string
type StreamCategory string

const (
	StreamStatusLive  StreamStatus = "live"
	StreamStatusEnded StreamStatus = "ended"

	StreamCategoryNews          StreamCategory = "news"
	StreamCategoryEducation     StreamCategory = "education"
	StreamCategoryEntertainment StreamCategory = "entertainment"
	StreamCategoryActivism      StreamCategory = "activism"
	StreamCategoryCommunity     StreamCategory = "community"
	StreamCategoryOther         StreamCategory = "other"
)

type Stream struct {
	StreamID        string
	Title           string
	Category        StreamCategory
	Description     string
	Status          StreamStatus
	StreamURL       string
	RTMPURL         string
	StreamKey       string
	ViewerCount     int
	PeakViewerCount int
	StartedAt       time.Time
	EndedAt         *time.Time
	CreatorID       string
	ChatEnabled     bool
	IsPublic        bool
}

func (s Stream) ValidateBasics() bool {
	title := strings.TrimSpace(s.Title)

	return title != "" &&
		len(title) <= 100 &&
		len(s.Description) <= 500 &&
		IsSupportedCategory(s.Category)
}

func IsSupportedCategory(value StreamCategory) bool {
	switch value {
	case StreamCategoryNews,
		StreamCategoryEducation,
		StreamCategoryEntertainment,
		StreamCategoryActivism,
		StreamCategoryCommunity,
		StreamCategoryOther:
		return true
	default:
		return false
	}
}
