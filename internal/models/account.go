package models

import "github.com/shopspring/decimal"

// AccountType categorizes a tracked account.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCash       AccountType = "cash"
	AccountCredit     AccountType = "credit"
	AccountCreditCard AccountType = "creditCard"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountDebt       AccountType = "debt"
)

// Account is a snapshot of a single account's balance. Credit balances
// represent amounts owed, not funds available.
type Account struct {
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
	IsAsset bool            `json:"is_asset"`
}

// SpendableBalance returns the cash actually available to spend:
// bank and cash balances minus amounts owed on credit accounts.
func SpendableBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		switch a.Type {
		case AccountBank, AccountCash:
			total = total.Add(a.Balance)
		case AccountCredit, AccountCreditCard:
			total = total.Sub(a.Balance)
		}
	}
	return total
}
