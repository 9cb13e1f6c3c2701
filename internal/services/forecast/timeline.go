package forecast

import (
	"fmt"
	"time"

	"fincast/internal/models"
)

// TimelineInput carries everything BuildTimeline needs. StartDate is
// required so projections are reproducible under test; Days is the number
// of days projected beyond it.
type TimelineInput struct {
	Days          int
	StartDate     time.Time
	Accounts      []models.Account
	IncomeEntries []models.IncomeEntry
	Bills         []models.Bill
}

// BuildTimeline projects a per-day running balance over Days+1 calendar
// days starting at StartDate. Day 0 carries the opening spendable
// balance across accounts; occurrences apply from the following day
// onward, since anything due on day 0 is already reflected in today's
// balances. Each day applies its income, then its bills. A malformed
// rule on any enabled entry fails the whole build.
func BuildTimeline(in TimelineInput) ([]models.TimelineDay, error) {
	if in.Days < 0 {
		return nil, fmt.Errorf("days must be >= 0, got %d", in.Days)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}

	start := dateOnly(in.StartDate)
	end := start.AddDate(0, 0, in.Days)
	eventStart := start.AddDate(0, 0, 1)

	incomeByDay := map[string][]models.TimelineEvent{}
	billsByDay := map[string][]models.TimelineEvent{}

	for _, entry := range in.IncomeEntries {
		if !entry.Enabled || eventStart.After(end) {
			continue
		}
		dates, err := Expand(entry.Rule, eventStart, end)
		if err != nil {
			return nil, fmt.Errorf("income %q: %w", entry.Source, err)
		}
		for _, d := range dates {
			key := dayKey(d)
			incomeByDay[key] = append(incomeByDay[key], models.TimelineEvent{
				Name:   entry.Source,
				Kind:   models.EventIncome,
				Amount: entry.Amount,
			})
		}
	}

	for _, bill := range in.Bills {
		if !bill.Active || eventStart.After(end) {
			continue
		}
		rule := bill.Rule
		if bill.IsOneOff {
			// A one-off fires exactly once on its anchor date, whatever
			// frequency the rule carries; past-due one-offs drop out of
			// the window naturally.
			rule.Frequency = models.FrequencyOnce
			rule.AnchorDayOfWeek = nil
			rule.AnchorDayOfMonth = nil
		}
		dates, err := Expand(rule, eventStart, end)
		if err != nil {
			return nil, fmt.Errorf("bill %q: %w", bill.Name, err)
		}
		for _, d := range dates {
			key := dayKey(d)
			billsByDay[key] = append(billsByDay[key], models.TimelineEvent{
				Name:   bill.Name,
				Kind:   models.EventBill,
				Amount: bill.Amount,
			})
		}
	}

	balance := models.SpendableBalance(in.Accounts)
	days := make([]models.TimelineDay, 0, in.Days+1)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := dayKey(d)
		var events []models.TimelineEvent

		for _, ev := range incomeByDay[key] {
			balance = balance.Add(ev.Amount)
			events = append(events, ev)
		}
		for _, ev := range billsByDay[key] {
			balance = balance.Sub(ev.Amount)
			events = append(events, ev)
		}

		projected := balance.Round(2)
		days = append(days, models.TimelineDay{
			Date:             models.DateOf(d),
			ProjectedBalance: projected,
			Events:           events,
			IsNegative:       projected.IsNegative(),
		})
	}

	return days, nil
}

// FindLowestBalance returns the first day achieving the minimum projected
// balance, or nil for an empty timeline. Ties go to the earliest date.
func FindLowestBalance(days []models.TimelineDay) *models.TimelineDay {
	if len(days) == 0 {
		return nil
	}
	lowest := &days[0]
	for i := 1; i < len(days); i++ {
		if days[i].ProjectedBalance.LessThan(lowest.ProjectedBalance) {
			lowest = &days[i]
		}
	}
	return lowest
}

// HasNegativeBalance reports whether any projected day dips below zero.
func HasNegativeBalance(days []models.TimelineDay) bool {
	for _, d := range days {
		if d.IsNegative {
			return true
		}
	}
	return false
}

// FirstNegativeDate returns the date of the first negative day, or nil
// when the balance never goes negative.
func FirstNegativeDate(days []models.TimelineDay) *models.Date {
	for _, d := range days {
		if d.IsNegative {
			date := d.Date
			return &date
		}
	}
	return nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
