package errors

import "errors"

var (
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrInvalidCampaignInput  = errors.New("invalid campaign input")
	ErrInvalidDonationAmount = errors.New("donation amount must be positive")
	ErrCampaignAlreadyExists = errors.New("campaign id already exists")
)
