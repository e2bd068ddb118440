// Package campaignservice implements crowdfunding campaigns inside the
// social-impact context.
//
// The module owns campaign creation, listing/filtering, and donation
// accounting, and produces donation events through an outbox-backed worker.
// Business rules live in application/domain layers; infrastructure concerns
// stay behind ports and adapters.
package campaignservice
