package kpi

import (
	"math"

	"github.com/wonny/c360/internal/contracts"
)

// TenureYears converts engagement days to years
func TenureYears(c contracts.Customer) float64 {
	return c.EngagementDays / DaysPerYear
}

// CLV projects customer lifetime value over ProjectionYears:
// average yearly deposit × 5 + fees + 3% of loans.
func CLV(c contracts.Customer) float64 {
	tenure := TenureYears(c)

	depositValue := 0.0
	if tenure > 0 {
		depositValue = c.TotalDeposit / tenure * ProjectionYears
	}

	return depositValue + c.TotalFees + c.TotalLoan*LoanContribution
}

// ProductCount counts held product lines plus the number of credit cards.
// Credit cards add their raw count; a negative count is ignored.
func ProductCount(c contracts.Customer) int {
	count := 0
	for _, balance := range []float64{
		c.BankLoans,
		c.BankDeposits,
		c.CheckingAccounts,
		c.SavingAccounts,
		c.ForeignCurrencyAccount,
		c.BusinessLending,
	} {
		if balance > 0 {
			count++
		}
	}

	if c.CreditCardCount > 0 {
		count += c.CreditCardCount
	}
	return count
}

// CrossSellOpportunity is the share of the product catalogue not yet held, in percent.
// Negative when the customer holds more than MaxProducts (many cards).
func CrossSellOpportunity(c contracts.Customer) float64 {
	return float64(MaxProducts-ProductCount(c)) / MaxProducts * 100
}

// WalletShare is deposits as a percentage of estimated income, capped at 999
func WalletShare(c contracts.Customer) float64 {
	return math.Min(c.TotalDeposit/atLeastOne(c.EstimatedIncome)*100, WalletShareCap)
}

// LoyaltyScore maps the loyalty tier to 0..4
func LoyaltyScore(c contracts.Customer) int {
	return c.Loyalty.Score()
}
