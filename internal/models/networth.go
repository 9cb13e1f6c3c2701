package models

import (
	"github.com/shopspring/decimal"
)

// NetWorthSnapshot is a historical net-worth reading, externally
// persisted and read-only here.
type NetWorthSnapshot struct {
	Date             Date            `json:"date"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
}

// Likelihood classifies how plausible reaching a milestone looks.
type Likelihood string

const (
	LikelihoodOnTrack Likelihood = "on_track"
	LikelihoodAtRisk  Likelihood = "at_risk"
	LikelihoodBehind  Likelihood = "behind"
)

// MilestoneInfo is the result of projecting a net-worth target.
// Pointer fields are nil when no meaningful value exists (flat or
// declining growth never yields an arrival date; percentage chance
// only applies when a deadline was supplied).
type MilestoneInfo struct {
	AvgMonthlyGrowth      decimal.Decimal  `json:"avg_monthly_growth"`
	EstimatedArrivalDate  *Date            `json:"estimated_arrival_date,omitempty"`
	SuggestedDate         *Date            `json:"suggested_date,omitempty"`
	Likelihood            Likelihood       `json:"likelihood"`
	PercentageChance      *int             `json:"percentage_chance,omitempty"`
	RequiredMonthlyGrowth *decimal.Decimal `json:"required_monthly_growth,omitempty"`
}
