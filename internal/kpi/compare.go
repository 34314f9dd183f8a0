package kpi

import (
	"math"

	"github.com/wonny/c360/internal/contracts"
)

// Comparison directions
const (
	Above = "above"
	Below = "below"
	AtAvg = "at" // within ±1% of the average
)

// benchmarkCap bounds radar values so one outlier does not flatten the chart
const benchmarkCap = 150

// Comparison is a value compared against a portfolio average
type Comparison struct {
	Applicable  bool    `json:"applicable"`
	PercentDiff float64 `json:"percent_diff"`
	Direction   string  `json:"direction"`
	Better      bool    `json:"better"`
}

// Compare returns the percent difference of value vs average.
// Not applicable when the average is 0 or either side is not finite.
func Compare(value, average float64, higherIsBetter bool) Comparison {
	if average == 0 || !isFinite(value) || !isFinite(average) {
		return Comparison{}
	}

	diff := (value - average) / average * 100
	above := diff > 0

	direction := Below
	switch {
	case math.Abs(diff) < 1:
		direction = AtAvg
	case above:
		direction = Above
	}

	better := above
	if !higherIsBetter {
		better = !above
	}

	return Comparison{
		Applicable:  true,
		PercentDiff: diff,
		Direction:   direction,
		Better:      better,
	}
}

// CustomerComparisons holds the comparisons shown on a profile
type CustomerComparisons struct {
	Tenure Comparison `json:"tenure"`
	CLV    Comparison `json:"clv"`
	Risk   Comparison `json:"risk"`
}

// CompareCustomer compares one customer's tenure, CLV and risk to the averages
func CompareCustomer(e contracts.EnrichedCustomer, avg contracts.PortfolioAverages) CustomerComparisons {
	return CustomerComparisons{
		Tenure: Compare(e.TenureYears, avg.AvgTenure, true),
		CLV:    Compare(e.CLV, avg.AvgCLV, true),
		Risk:   Compare(e.RiskWeighting, avg.AvgRisk, false),
	}
}

// BenchmarkPoint is one axis of the "vs. portfolio average" radar
type BenchmarkPoint struct {
	Metric   string  `json:"metric"`
	Customer float64 `json:"customer"`
	Average  float64 `json:"average"`
}

// Benchmark indexes the customer against the averages (average = 100, capped at 150).
// An axis with a zero average reports 0.
func Benchmark(e contracts.EnrichedCustomer, avg contracts.PortfolioAverages) []BenchmarkPoint {
	axes := []struct {
		metric  string
		value   float64
		average float64
	}{
		{"CLV", e.CLV, avg.AvgCLV},
		{"Fees", e.LifetimeFees, avg.AvgFees},
		{"Products", float64(e.ProductCount), avg.AvgProductCount},
		{"Wallet Share", e.WalletShare, avg.AvgWalletShare},
		{"Tenure", e.TenureYears, avg.AvgTenure},
	}

	points := make([]BenchmarkPoint, 0, len(axes))
	for _, a := range axes {
		index := 0.0
		if a.average != 0 {
			index = math.Min(a.value/a.average*100, benchmarkCap)
		}
		points = append(points, BenchmarkPoint{Metric: a.metric, Customer: index, Average: 100})
	}
	return points
}

// Slice is a named positive amount in a composition chart
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RevenueComposition splits revenue into fees, positive spread and optimisation headroom.
// Non-positive slices are dropped.
func RevenueComposition(e contracts.EnrichedCustomer) []Slice {
	return positiveSlices([]Slice{
		{Name: "Lifetime Fees", Value: e.LifetimeFees},
		{Name: "Spread Revenue", Value: math.Max(0, e.LoanDepositSpread)},
		{Name: "Fee Optimization", Value: e.FeeOptimization},
	})
}

// ProductPortfolio lists the customer's product balances. Zero balances are dropped.
func ProductPortfolio(c contracts.Customer) []Slice {
	return positiveSlices([]Slice{
		{Name: "Bank Loans", Value: c.BankLoans},
		{Name: "Business Lending", Value: c.BusinessLending},
		{Name: "Bank Deposits", Value: c.BankDeposits},
		{Name: "Checking", Value: c.CheckingAccounts},
		{Name: "Savings", Value: c.SavingAccounts},
		{Name: "FX Account", Value: c.ForeignCurrencyAccount},
		{Name: "Credit Cards", Value: c.CreditCardBalance},
	})
}

func positiveSlices(in []Slice) []Slice {
	out := make([]Slice, 0, len(in))
	for _, s := range in {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
