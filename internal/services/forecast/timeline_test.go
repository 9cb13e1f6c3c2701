package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fincast/internal/models"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bankAccount(balance string) models.Account {
	return models.Account{Name: "Everyday", Type: models.AccountBank, Balance: money(balance), IsAsset: true}
}

// TestBuildTimelineWeeklyBill is the reference scenario: a $1000 bank
// account and one $50 weekly bill anchored on the start date over 14
// days yields exactly two deductions and a $900 closing balance.
func TestBuildTimelineWeeklyBill(t *testing.T) {
	start := date(2026, time.January, 5) // Monday
	days, err := BuildTimeline(TimelineInput{
		Days:      14,
		StartDate: start,
		Accounts:  []models.Account{bankAccount("1000")},
		Bills: []models.Bill{{
			Name:   "Groceries",
			Amount: money("50"),
			Rule:   weeklyRule(start),
			Active: true,
		}},
	})
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}

	if len(days) != 15 {
		t.Fatalf("got %d days, want 15", len(days))
	}

	occurrences := 0
	for _, d := range days {
		occurrences += len(d.Events)
	}
	if occurrences != 2 {
		t.Errorf("got %d bill occurrences, want 2", occurrences)
	}

	closing := days[len(days)-1].ProjectedBalance
	if !closing.Equal(money("900")) {
		t.Errorf("closing balance = %s, want 900", closing)
	}
	if HasNegativeBalance(days) {
		t.Error("balance should never go negative")
	}
}

// TestBuildTimelineSpendableBalance verifies the opening balance is
// bank+cash minus credit balances, ignoring investments and loans.
func TestBuildTimelineSpendableBalance(t *testing.T) {
	days, err := BuildTimeline(TimelineInput{
		Days:      0,
		StartDate: date(2026, time.March, 1),
		Accounts: []models.Account{
			{Name: "Checking", Type: models.AccountBank, Balance: money("1000"), IsAsset: true},
			{Name: "Wallet", Type: models.AccountCash, Balance: money("200"), IsAsset: true},
			{Name: "Visa", Type: models.AccountCreditCard, Balance: money("300")},
			{Name: "Overdraft", Type: models.AccountCredit, Balance: money("150")},
			{Name: "Shares", Type: models.AccountInvestment, Balance: money("5000"), IsAsset: true},
			{Name: "Mortgage", Type: models.AccountLoan, Balance: money("250000")},
		},
	})
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}

	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if !days[0].ProjectedBalance.Equal(money("750")) {
		t.Errorf("opening balance = %s, want 750", days[0].ProjectedBalance)
	}
}

// TestBuildTimelineConservation verifies each day's balance is the prior
// day's balance plus that day's income minus that day's bills.
func TestBuildTimelineConservation(t *testing.T) {
	start := date(2026, time.January, 5) // Monday
	days, err := BuildTimeline(TimelineInput{
		Days:      30,
		StartDate: start,
		Accounts:  []models.Account{bankAccount("500")},
		IncomeEntries: []models.IncomeEntry{{
			Source:  "Salary",
			Amount:  money("800"),
			Rule:    weeklyRule(start.AddDate(0, 0, 4)), // Fridays
			Enabled: true,
		}},
		Bills: []models.Bill{
			{Name: "Rent", Amount: money("950"), Rule: monthlyRule(start, 15), Active: true},
			{Name: "Phone", Amount: money("45"), Rule: weeklyRule(start.AddDate(0, 0, 1)), Active: true},
		},
	})
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}

	for i := 1; i < len(days); i++ {
		expected := days[i-1].ProjectedBalance
		for _, ev := range days[i].Events {
			if ev.Kind == models.EventIncome {
				expected = expected.Add(ev.Amount)
			} else {
				expected = expected.Sub(ev.Amount)
			}
		}
		if !days[i].ProjectedBalance.Equal(expected) {
			t.Errorf("day %d (%s): balance %s, want %s",
				i, days[i].Date, days[i].ProjectedBalance, expected)
		}
	}
}

// TestBuildTimelineOneOffBills verifies a one-off fires once regardless
// of its rule frequency and that past-due one-offs are excluded.
func TestBuildTimelineOneOffBills(t *testing.T) {
	start := date(2026, time.April, 6) // Monday

	t.Run("fires exactly once despite weekly frequency", func(t *testing.T) {
		days, err := BuildTimeline(TimelineInput{
			Days:      28,
			StartDate: start,
			Accounts:  []models.Account{bankAccount("1000")},
			Bills: []models.Bill{{
				Name:     "Car registration",
				Amount:   money("300"),
				Rule:     weeklyRule(start.AddDate(0, 0, 9)),
				Active:   true,
				IsOneOff: true,
			}},
		})
		if err != nil {
			t.Fatalf("BuildTimeline failed: %v", err)
		}

		occurrences := 0
		for _, d := range days {
			occurrences += len(d.Events)
		}
		if occurrences != 1 {
			t.Errorf("got %d occurrences, want 1", occurrences)
		}
		if !days[len(days)-1].ProjectedBalance.Equal(money("700")) {
			t.Errorf("closing balance = %s, want 700", days[len(days)-1].ProjectedBalance)
		}
	})

	t.Run("past due one-off is excluded", func(t *testing.T) {
		days, err := BuildTimeline(TimelineInput{
			Days:      14,
			StartDate: start,
			Accounts:  []models.Account{bankAccount("1000")},
			Bills: []models.Bill{{
				Name:     "Old invoice",
				Amount:   money("300"),
				Rule:     weeklyRule(start.AddDate(0, 0, -30)),
				Active:   true,
				IsOneOff: true,
			}},
		})
		if err != nil {
			t.Fatalf("BuildTimeline failed: %v", err)
		}
		if !days[len(days)-1].ProjectedBalance.Equal(money("1000")) {
			t.Errorf("closing balance = %s, want 1000", days[len(days)-1].ProjectedBalance)
		}
	})
}

// TestBuildTimelineSkipsDisabledEntries verifies disabled income and
// inactive bills contribute nothing.
func TestBuildTimelineSkipsDisabledEntries(t *testing.T) {
	start := date(2026, time.January, 5)
	days, err := BuildTimeline(TimelineInput{
		Days:      14,
		StartDate: start,
		Accounts:  []models.Account{bankAccount("100")},
		IncomeEntries: []models.IncomeEntry{{
			Source: "Side gig", Amount: money("75"), Rule: weeklyRule(start), Enabled: false,
		}},
		Bills: []models.Bill{{
			Name: "Paused sub", Amount: money("20"), Rule: weeklyRule(start), Active: false,
		}},
	})
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}
	for _, d := range days {
		if len(d.Events) != 0 {
			t.Fatalf("day %s has %d events, want 0", d.Date, len(d.Events))
		}
	}
}

// TestBuildTimelineRejectsMalformedRules verifies a bad rule fails the
// whole build instead of being skipped.
func TestBuildTimelineRejectsMalformedRules(t *testing.T) {
	_, err := BuildTimeline(TimelineInput{
		Days:      14,
		StartDate: date(2026, time.January, 5),
		Accounts:  []models.Account{bankAccount("100")},
		Bills: []models.Bill{{
			Name:   "Broken",
			Amount: money("20"),
			Rule: models.RecurringRule{
				Frequency:  models.FrequencyWeekly,
				AnchorDate: models.NewDate(2026, time.January, 5),
				// anchor day of week missing
			},
			Active: true,
		}},
	})
	if err == nil {
		t.Fatal("expected error for malformed rule, got none")
	}
}

// TestBuildTimelineValidatesInput covers the argument checks.
func TestBuildTimelineValidatesInput(t *testing.T) {
	if _, err := BuildTimeline(TimelineInput{Days: -1, StartDate: date(2026, time.January, 5)}); err == nil {
		t.Error("expected error for negative days")
	}
	if _, err := BuildTimeline(TimelineInput{Days: 7}); err == nil {
		t.Error("expected error for missing start date")
	}
}

// TestTimelineQueries covers the derived lookups over a built timeline.
func TestTimelineQueries(t *testing.T) {
	start := date(2026, time.January, 5) // Monday
	days, err := BuildTimeline(TimelineInput{
		Days:      21,
		StartDate: start,
		Accounts:  []models.Account{bankAccount("100")},
		Bills: []models.Bill{{
			Name: "Subscription", Amount: money("80"), Rule: weeklyRule(start), Active: true,
		}},
	})
	if err != nil {
		t.Fatalf("BuildTimeline failed: %v", err)
	}

	// Deductions on Jan 12, 19, 26: 100 -> 20 -> -60 -> -140.
	t.Run("has negative balance", func(t *testing.T) {
		if !HasNegativeBalance(days) {
			t.Error("expected a negative day")
		}
	})

	t.Run("first negative date", func(t *testing.T) {
		got := FirstNegativeDate(days)
		if got == nil {
			t.Fatal("expected a first negative date")
		}
		want := models.NewDate(2026, time.January, 19)
		if !got.Equal(want.Time) {
			t.Errorf("first negative date = %s, want %s", got, want)
		}
	})

	t.Run("lowest balance is first day achieving minimum", func(t *testing.T) {
		lowest := FindLowestBalance(days)
		if lowest == nil {
			t.Fatal("expected a lowest day")
		}
		if !lowest.ProjectedBalance.Equal(money("-140")) {
			t.Errorf("lowest balance = %s, want -140", lowest.ProjectedBalance)
		}
		if !lowest.Date.Equal(date(2026, time.January, 26)) {
			t.Errorf("lowest date = %s, want 2026-01-26", lowest.Date)
		}
	})

	t.Run("empty timeline yields neutral results", func(t *testing.T) {
		if FindLowestBalance(nil) != nil {
			t.Error("expected nil lowest day")
		}
		if HasNegativeBalance(nil) {
			t.Error("expected no negative balance")
		}
		if FirstNegativeDate(nil) != nil {
			t.Error("expected nil first negative date")
		}
	})
}
