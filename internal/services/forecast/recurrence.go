// Package forecast implements the financial forecasting engine: recurring
// event expansion, interest accrual, cash-flow timelines, debt payoff
// simulation, and net-worth milestone projection. Every function is pure;
// callers supply all dates explicitly and no function reads the clock.
package forecast

import (
	"fmt"
	"time"

	"fincast/internal/models"
)

// Expand returns every date the rule fires within [windowStart, windowEnd],
// inclusive on both ends, in ascending order. Invalid rules fail with an
// error rather than expanding to nothing, so misconfigured data surfaces
// instead of silently producing zero occurrences.
func Expand(rule models.RecurringRule, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recurring rule: %w", err)
	}

	start := dateOnly(windowStart)
	end := dateOnly(windowEnd)
	if end.Before(start) {
		return nil, fmt.Errorf("window end %s precedes start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	anchor := dateOnly(rule.AnchorDate.Time)

	switch rule.Frequency {
	case models.FrequencyOnce:
		if anchor.Before(start) || anchor.After(end) {
			return []time.Time{}, nil
		}
		return []time.Time{anchor}, nil
	case models.FrequencyWeekly, models.FrequencyFortnightly:
		return expandByDays(anchor, *rule.AnchorDayOfWeek, rule.Frequency.DayStep(), start, end), nil
	default:
		return expandByMonths(anchor, *rule.AnchorDayOfMonth, rule.Frequency.MonthStep(), start, end), nil
	}
}

// expandByDays handles weekly and fortnightly rules. The first occurrence
// is the anchor date rolled forward to the anchor weekday; catching up to
// the window jumps by whole steps rather than day-by-day.
func expandByDays(anchor time.Time, dayOfWeek, step int, start, end time.Time) []time.Time {
	first := anchor
	if offset := (dayOfWeek - int(anchor.Weekday()) + 7) % 7; offset != 0 {
		first = first.AddDate(0, 0, offset)
	}

	if first.Before(start) {
		days := int(start.Sub(first).Hours() / 24)
		steps := days / step
		if days%step != 0 {
			steps++
		}
		first = first.AddDate(0, 0, steps*step)
	}

	dates := []time.Time{}
	for d := first; !d.After(end); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates
}

// expandByMonths handles monthly, quarterly, and yearly rules. Steps move
// by whole calendar months, never fixed day counts, so a day-31 anchor
// lands on Feb 28/29 instead of drifting. The anchor date fixes the phase
// month for multi-month steps.
func expandByMonths(anchor time.Time, dayOfMonth, step int, start, end time.Time) []time.Time {
	year, month := anchor.Year(), int(anchor.Month())

	first := clampedDate(year, month, dayOfMonth, anchor.Location())
	if first.Before(start) {
		// Jump most of the way in one step, then settle with at most a
		// couple of single steps to cover clamping at month ends.
		monthsBehind := (start.Year()-year)*12 + int(start.Month()) - month
		if jump := (monthsBehind / step) * step; jump > 0 {
			month += jump
			first = clampedDate(year, month, dayOfMonth, anchor.Location())
		}
		for first.Before(start) {
			month += step
			first = clampedDate(year, month, dayOfMonth, anchor.Location())
		}
	}

	dates := []time.Time{}
	for d := first; !d.After(end); {
		dates = append(dates, d)
		month += step
		d = clampedDate(year, month, dayOfMonth, anchor.Location())
	}
	return dates
}

// clampedDate builds a date from a possibly-overflowing month index and a
// day-of-month clamped to the target month's length.
func clampedDate(year, month, day int, loc *time.Location) time.Time {
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
