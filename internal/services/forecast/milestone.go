package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fincast/internal/models"
)

const (
	// snapshotToleranceDays bounds how far a snapshot may sit from a
	// monthly lookback point and still represent it.
	snapshotToleranceDays = 5

	// indefiniteHorizonMonths is the cutoff beyond which no arrival date
	// is emitted; multi-year-out projections carry false precision.
	indefiniteHorizonMonths = 60

	// suggestedDateCapMonths caps the buffered suggested date.
	suggestedDateCapMonths = 120

	// suggestedDateBuffer inflates the arrival estimate by 20%.
	suggestedDateBuffer = 1.2

	// chanceMultiplier scales the growth ratio into a 0-99 chance.
	chanceMultiplier = 85

	// daysPerMonth converts day spans to fractional months.
	daysPerMonth = 30.0
)

// ProjectMilestone estimates when net worth reaches targetAmount given
// snapshot history, and how likely that looks. The caller supplies now
// explicitly; nothing here reads the clock. Absence of usable history is
// a legitimate state, not an error: it yields zero growth and no arrival.
func ProjectMilestone(currentNetWorth, targetAmount decimal.Decimal, snapshots []models.NetWorthSnapshot, deadline *time.Time, now time.Time) models.MilestoneInfo {
	now = dateOnly(now)
	growth := estimateMonthlyGrowth(currentNetWorth, snapshots, now)

	info := models.MilestoneInfo{AvgMonthlyGrowth: growth.Round(2)}

	remaining := targetAmount.Sub(currentNetWorth)
	if !remaining.IsPositive() {
		// Target already met: on track regardless of trend.
		chance := 99
		info.Likelihood = models.LikelihoodOnTrack
		info.PercentageChance = &chance
		return info
	}

	var monthsNeeded float64
	if growth.IsPositive() {
		monthsNeeded, _ = remaining.Div(growth).Float64()
		if monthsNeeded <= indefiniteHorizonMonths {
			arrival := models.DateOf(addMonths(now, monthsNeeded))
			info.EstimatedArrivalDate = &arrival
		}
		if buffered := monthsNeeded * suggestedDateBuffer; buffered <= suggestedDateCapMonths {
			suggested := models.DateOf(addMonths(now, buffered))
			info.SuggestedDate = &suggested
		}
	}

	if deadline == nil {
		switch {
		case !growth.IsPositive():
			info.Likelihood = models.LikelihoodBehind
		case info.EstimatedArrivalDate != nil:
			info.Likelihood = models.LikelihoodOnTrack
		default:
			// Positive growth but indefinitely far out.
			info.Likelihood = models.LikelihoodAtRisk
		}
		return info
	}

	monthsRemaining := monthsBetween(now, dateOnly(*deadline))
	if monthsRemaining <= 0 {
		chance := 0
		info.Likelihood = models.LikelihoodBehind
		info.PercentageChance = &chance
		return info
	}

	required := remaining.Div(decimal.NewFromFloat(monthsRemaining))
	requiredRounded := required.Round(2)
	info.RequiredMonthlyGrowth = &requiredRounded

	ratio, _ := growth.Div(required).Float64()
	chance := int(math.Round(ratio * chanceMultiplier))
	if chance < 0 {
		chance = 0
	}
	if chance > 99 {
		chance = 99
	}
	info.PercentageChance = &chance

	switch {
	case ratio >= 0.9:
		info.Likelihood = models.LikelihoodOnTrack
	case ratio >= 0.6:
		info.Likelihood = models.LikelihoodAtRisk
	default:
		info.Likelihood = models.LikelihoodBehind
	}
	return info
}

// estimateMonthlyGrowth computes a weighted average of up to three
// trailing monthly deltas, weighting the most recent delta 3, then 2,
// then 1. Each lookback point uses the nearest snapshot within the
// tolerance window; deltas with a missing endpoint are dropped without
// renormalizing the remaining weights (a known approximation: losing the
// middle point weights the rest 3:1 rather than rescaling to 3:2:1).
// With fewer than two usable deltas it falls back to a single slope from
// the oldest snapshot to now, and to zero with no history at all.
func estimateMonthlyGrowth(currentNetWorth decimal.Decimal, snapshots []models.NetWorthSnapshot, now time.Time) decimal.Decimal {
	if len(snapshots) == 0 {
		return decimal.Zero
	}

	sorted := make([]models.NetWorthSnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	// values[0] is now; values[k] is the net worth ~k months back.
	values := make([]*decimal.Decimal, 4)
	values[0] = &currentNetWorth
	for k := 1; k <= 3; k++ {
		if snap := nearestSnapshot(sorted, now.AddDate(0, -k, 0)); snap != nil {
			values[k] = &snap.NetWorth
		}
	}

	weightedSum := decimal.Zero
	weightTotal := decimal.Zero
	deltas := 0
	for k := 1; k <= 3; k++ {
		if values[k-1] == nil || values[k] == nil {
			continue
		}
		weight := decimal.NewFromInt(int64(4 - k))
		delta := values[k-1].Sub(*values[k])
		weightedSum = weightedSum.Add(delta.Mul(weight))
		weightTotal = weightTotal.Add(weight)
		deltas++
	}
	if deltas >= 2 {
		return weightedSum.Div(weightTotal)
	}

	oldest := sorted[0]
	months := monthsBetween(dateOnly(oldest.Date.Time), now)
	if months <= 0 {
		return decimal.Zero
	}
	return currentNetWorth.Sub(oldest.NetWorth).Div(decimal.NewFromFloat(months))
}

// nearestSnapshot returns the snapshot closest to target within the
// tolerance window, or nil when none qualifies.
func nearestSnapshot(sorted []models.NetWorthSnapshot, target time.Time) *models.NetWorthSnapshot {
	var best *models.NetWorthSnapshot
	bestDistance := 0.0
	for i := range sorted {
		distance := math.Abs(sorted[i].Date.Sub(target).Hours() / 24)
		if distance > snapshotToleranceDays {
			continue
		}
		if best == nil || distance < bestDistance {
			best = &sorted[i]
			bestDistance = distance
		}
	}
	return best
}

// monthsBetween returns the fractional months from a to b.
func monthsBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24 / daysPerMonth
}

// addMonths advances a date by a fractional month count, rounding up to
// whole months so an arrival is never reported earlier than reachable.
func addMonths(t time.Time, months float64) time.Time {
	whole := int(math.Ceil(months))
	if whole < 1 {
		whole = 1
	}
	return t.AddDate(0, whole, 0)
}
