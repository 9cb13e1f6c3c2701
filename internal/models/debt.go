package models

import (
	"github.com/shopspring/decimal"
)

// Strategy selects how extra debt payments are prioritized.
type Strategy string

const (
	// StrategyAvalanche targets the highest annual rate first.
	StrategyAvalanche Strategy = "avalanche"
	// StrategySnowball targets the lowest balance first.
	StrategySnowball Strategy = "snowball"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyAvalanche || s == StrategySnowball
}

// Debt is one revolving balance fed into the payoff simulator.
// MinimumPayment may exceed Balance; payments clamp to what is owed.
type Debt struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Balance           decimal.Decimal `json:"balance"`
	AnnualRatePercent float64         `json:"annual_rate_percent"`
	MinimumPayment    decimal.Decimal `json:"minimum_payment"`
}

// DebtMonth is one debt's state within a simulated month.
type DebtMonth struct {
	DebtID   string          `json:"debt_id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Payment  decimal.Decimal `json:"payment"`
	Interest decimal.Decimal `json:"interest"`
	PaidOff  bool            `json:"paid_off"`
}

// MonthlyProjection is an immutable snapshot of one simulated month.
// Month 0 is the first simulated month.
type MonthlyProjection struct {
	Month              int             `json:"month"`
	Debts              []DebtMonth     `json:"debts"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	InterestAccrued    decimal.Decimal `json:"interest_accrued"`
	CumulativeInterest decimal.Decimal `json:"cumulative_interest"`
}

// PayoffSummary gives headline numbers for a full simulation run.
// PaidOff is false when the simulation hit its month cap with balance
// remaining, which callers must surface as "not achievable at this
// payment level" rather than an error.
type PayoffSummary struct {
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	PaidOff       bool            `json:"paid_off"`
}

// StrategyComparison reports the outcome of both strategies over
// identical inputs, for display only.
type StrategyComparison struct {
	Avalanche     PayoffSummary   `json:"avalanche"`
	Snowball      PayoffSummary   `json:"snowball"`
	InterestSaved decimal.Decimal `json:"interest_saved"` // snowball interest - avalanche interest
	MonthsSaved   int             `json:"months_saved"`   // snowball months - avalanche months
}
