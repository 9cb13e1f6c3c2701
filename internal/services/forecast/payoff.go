package forecast

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fincast/internal/models"
)

// DefaultMaxMonths caps amortization runs. A simulation that hits the cap
// with balance remaining is a valid terminal state ("not achievable at
// this payment level"), not an error: it happens whenever minimum
// payments can't outrun accruing interest.
const DefaultMaxMonths = 360

// debtState tracks one debt across simulated months. Balances stay at
// full precision; rounding happens only on the reported projection.
type debtState struct {
	debt    models.Debt
	balance decimal.Decimal
	paidOff bool
}

// Simulate runs a month-by-month amortization of debts with an extra
// monthly payment budget allocated by strategy. Each month accrues one
// month of interest and pays minimums in input order, then walks debts in
// strategy order applying the extra budget plus any minimums freed by
// already-paid-off debts. Month 0 is the first simulated month.
func Simulate(debts []models.Debt, extraMonthly decimal.Decimal, strategy models.Strategy, maxMonths int) ([]models.MonthlyProjection, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}
	if len(debts) == 0 {
		return []models.MonthlyProjection{}, nil
	}

	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{debt: d, balance: d.Balance}
	}

	projections := make([]models.MonthlyProjection, 0, 12)
	cumulativeInterest := decimal.Zero

	for month := 0; month < maxMonths; month++ {
		ordered := strategyOrder(states, strategy)

		pool := extraMonthly
		monthInterest := decimal.Zero
		payments := make([]decimal.Decimal, len(states))
		interests := make([]decimal.Decimal, len(states))

		// Interest and minimum pass, in input order. Minimums of debts
		// already at zero join the extra pool for this same month.
		for i, s := range states {
			if !s.balance.IsPositive() {
				s.paidOff = true
				pool = pool.Add(s.debt.MinimumPayment)
				continue
			}
			interest := s.balance.Mul(periodRate(s.debt.AnnualRatePercent, 12))
			s.balance = s.balance.Add(interest)
			interests[i] = interest
			monthInterest = monthInterest.Add(interest)

			payment := s.debt.MinimumPayment
			if payment.GreaterThan(s.balance) {
				payment = s.balance
			}
			s.balance = s.balance.Sub(payment)
			payments[i] = payment
		}

		// Extra pass, in strategy order, capped at each debt's balance.
		for _, i := range ordered {
			if !pool.IsPositive() {
				break
			}
			s := states[i]
			if s.paidOff || !s.balance.IsPositive() {
				continue
			}
			pay := pool
			if pay.GreaterThan(s.balance) {
				pay = s.balance
			}
			s.balance = s.balance.Sub(pay)
			payments[i] = payments[i].Add(pay)
			pool = pool.Sub(pay)
		}

		cumulativeInterest = cumulativeInterest.Add(monthInterest)

		debtMonths := make([]models.DebtMonth, len(states))
		totalBalance := decimal.Zero
		totalPaid := decimal.Zero
		for i, s := range states {
			totalBalance = totalBalance.Add(s.balance)
			totalPaid = totalPaid.Add(payments[i])
			debtMonths[i] = models.DebtMonth{
				DebtID:   s.debt.ID,
				Name:     s.debt.Name,
				Balance:  s.balance.Round(2),
				Payment:  payments[i].Round(2),
				Interest: interests[i].Round(2),
				PaidOff:  !s.balance.IsPositive(),
			}
		}

		projections = append(projections, models.MonthlyProjection{
			Month:              month,
			Debts:              debtMonths,
			TotalBalance:       totalBalance.Round(2),
			TotalPaid:          totalPaid.Round(2),
			InterestAccrued:    monthInterest.Round(2),
			CumulativeInterest: cumulativeInterest.Round(2),
		})

		if !totalBalance.IsPositive() {
			break
		}
	}

	return projections, nil
}

// strategyOrder returns debt indices sorted for the extra-payment pass:
// avalanche by descending annual rate, snowball by ascending balance.
// The sort is stable, so ties preserve input order.
func strategyOrder(states []*debtState, strategy models.Strategy) []int {
	order := make([]int, len(states))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := states[order[a]], states[order[b]]
		if strategy == models.StrategyAvalanche {
			return sa.debt.AnnualRatePercent > sb.debt.AnnualRatePercent
		}
		return sa.balance.LessThan(sb.balance)
	})
	return order
}

// Summarize reduces a projection sequence to headline numbers. PaidOff is
// false when the run ended at the month cap with balance outstanding.
func Summarize(projections []models.MonthlyProjection) models.PayoffSummary {
	if len(projections) == 0 {
		return models.PayoffSummary{PaidOff: true, TotalInterest: decimal.Zero}
	}
	last := projections[len(projections)-1]
	return models.PayoffSummary{
		Months:        len(projections),
		TotalInterest: last.CumulativeInterest,
		PaidOff:       !last.TotalBalance.IsPositive(),
	}
}

// CompareStrategies runs both strategies over identical inputs and
// reports the deltas, positive when avalanche wins. Display-only; the
// simulation contract itself is unchanged.
func CompareStrategies(debts []models.Debt, extraMonthly decimal.Decimal, maxMonths int) (models.StrategyComparison, error) {
	avalanche, err := Simulate(debts, extraMonthly, models.StrategyAvalanche, maxMonths)
	if err != nil {
		return models.StrategyComparison{}, err
	}
	snowball, err := Simulate(debts, extraMonthly, models.StrategySnowball, maxMonths)
	if err != nil {
		return models.StrategyComparison{}, err
	}

	av := Summarize(avalanche)
	sb := Summarize(snowball)
	return models.StrategyComparison{
		Avalanche:     av,
		Snowball:      sb,
		InterestSaved: sb.TotalInterest.Sub(av.TotalInterest),
		MonthsSaved:   sb.Months - av.Months,
	}, nil
}
