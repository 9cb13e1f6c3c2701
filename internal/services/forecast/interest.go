package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fincast/internal/models"
)

// AccrualResult reports compounding interest applied to a balance.
// Both fields are rounded to cents; the computation behind them keeps
// full precision so multi-period catch-ups match period-by-period runs.
type AccrualResult struct {
	Interest   decimal.Decimal `json:"interest"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// Accrue compounds interest on balance for periodsElapsed periods at the
// given annual percentage rate. The frequency fixes the periods per year
// (weekly 52, fortnightly 26, monthly 12). Zero or negative periods is a
// no-op returning the balance unchanged.
func Accrue(balance decimal.Decimal, annualRatePercent float64, periodsElapsed int, frequency models.Frequency) (AccrualResult, error) {
	periodsPerYear := frequency.PeriodsPerYear()
	if periodsPerYear == 0 {
		return AccrualResult{}, fmt.Errorf("frequency %q is not a compounding interval", frequency)
	}
	if periodsElapsed <= 0 {
		return AccrualResult{Interest: decimal.Zero, NewBalance: balance}, nil
	}

	rate := periodRate(annualRatePercent, periodsPerYear)
	accrued := decimal.Zero
	for i := 0; i < periodsElapsed; i++ {
		interest := balance.Mul(rate)
		balance = balance.Add(interest)
		accrued = accrued.Add(interest)
	}

	return AccrualResult{
		Interest:   accrued.Round(2),
		NewBalance: balance.Round(2),
	}, nil
}

// periodRate converts an annual percentage rate into a per-period
// fractional rate. Shared with the payoff simulator, which compounds
// month by month with periodsPerYear = 12.
func periodRate(annualRatePercent float64, periodsPerYear int) decimal.Decimal {
	return decimal.NewFromFloat(annualRatePercent).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(periodsPerYear)))
}
