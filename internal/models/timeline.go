package models

import (
	"github.com/shopspring/decimal"
)

// EventKind distinguishes money in from money out on a timeline day.
type EventKind string

const (
	EventIncome EventKind = "income"
	EventBill   EventKind = "bill"
)

// TimelineEvent is a single income or bill occurrence landing on a day.
type TimelineEvent struct {
	Name   string          `json:"name"`
	Kind   EventKind       `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// TimelineDay is one calendar day of the cash-flow projection.
// Immutable once built; the balance is determined only by the prior
// day's balance and this day's events.
type TimelineDay struct {
	Date             Date            `json:"date"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	Events           []TimelineEvent `json:"events,omitempty"`
	IsNegative       bool            `json:"is_negative"`
}
