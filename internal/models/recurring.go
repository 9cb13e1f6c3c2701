package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Frequency describes how often a recurring rule fires.
type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyQuarterly   Frequency = "quarterly"
	FrequencyYearly      Frequency = "yearly"
	FrequencyOnce        Frequency = "once"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyYearly, FrequencyOnce:
		return true
	}
	return false
}

// MonthStep returns the calendar-month step for month-based frequencies,
// or 0 for day-based and one-off frequencies.
func (f Frequency) MonthStep() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	}
	return 0
}

// DayStep returns the day step for week-based frequencies, or 0 otherwise.
func (f Frequency) DayStep() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyFortnightly:
		return 14
	}
	return 0
}

// PeriodsPerYear returns the compounding periods per year for frequencies
// usable as an interest compounding interval. Returns 0 for frequencies
// that are not valid compounding intervals.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyFortnightly:
		return 26
	case FrequencyMonthly:
		return 12
	}
	return 0
}

// RecurringRule defines when a recurring income or bill fires.
// Exactly one anchor field must be set, matching the frequency's period
// unit: week-based rules anchor to a day of week, month-based rules to a
// day of month, and one-off rules to the anchor date alone.
type RecurringRule struct {
	Frequency        Frequency `json:"frequency"`
	AnchorDate       Date      `json:"anchor_date"`
	AnchorDayOfWeek  *int      `json:"anchor_day_of_week,omitempty"`  // 0 = Sunday
	AnchorDayOfMonth *int      `json:"anchor_day_of_month,omitempty"` // 1-31
}

// Validate checks the rule's anchor fields against its frequency.
func (r RecurringRule) Validate() error {
	if !r.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q", r.Frequency)
	}
	if r.AnchorDate.IsZero() {
		return fmt.Errorf("%s rule has no anchor date", r.Frequency)
	}

	switch r.Frequency {
	case FrequencyWeekly, FrequencyFortnightly:
		if r.AnchorDayOfWeek == nil {
			return fmt.Errorf("%s rule requires anchor_day_of_week", r.Frequency)
		}
		if r.AnchorDayOfMonth != nil {
			return fmt.Errorf("%s rule must not set anchor_day_of_month", r.Frequency)
		}
		if dow := *r.AnchorDayOfWeek; dow < 0 || dow > 6 {
			return fmt.Errorf("anchor_day_of_week %d out of range 0-6", dow)
		}
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		if r.AnchorDayOfMonth == nil {
			return fmt.Errorf("%s rule requires anchor_day_of_month", r.Frequency)
		}
		if r.AnchorDayOfWeek != nil {
			return fmt.Errorf("%s rule must not set anchor_day_of_week", r.Frequency)
		}
		if dom := *r.AnchorDayOfMonth; dom < 1 || dom > 31 {
			return fmt.Errorf("anchor_day_of_month %d out of range 1-31", dom)
		}
	case FrequencyOnce:
		if r.AnchorDayOfWeek != nil || r.AnchorDayOfMonth != nil {
			return fmt.Errorf("once rule must not set a recurrence anchor")
		}
	}
	return nil
}

// IncomeEntry is a recurring source of income.
type IncomeEntry struct {
	Source  string          `json:"source"`
	Amount  decimal.Decimal `json:"amount"`
	Rule    RecurringRule   `json:"rule"`
	Enabled bool            `json:"enabled"`
}

// Bill is a recurring or one-off obligation. IsOneOff forces a single
// occurrence regardless of the rule's frequency.
type Bill struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Rule     RecurringRule   `json:"rule"`
	Active   bool            `json:"active"`
	IsOneOff bool            `json:"is_one_off"`
}
