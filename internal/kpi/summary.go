package kpi

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/wonny/c360/internal/contracts"
)

// moneyContext is wide enough for portfolio totals without rounding
var moneyContext = apd.BaseContext.WithPrecision(34)

// Summarize computes the quick metrics strip over enriched customers.
// Total revenue is accumulated in decimal so large portfolios do not drift.
func Summarize(enriched []contracts.EnrichedCustomer) contracts.QuickMetrics {
	if len(enriched) == 0 {
		return contracts.QuickMetrics{}
	}

	fees := make([]float64, len(enriched))
	var clv, risk float64
	for i, e := range enriched {
		fees[i] = e.LifetimeFees
		clv += e.CLV
		risk += e.RiskWeighting
	}

	n := float64(len(enriched))
	return contracts.QuickMetrics{
		TotalCustomers: len(enriched),
		AvgCLV:         clv / n,
		TotalRevenue:   SumMoney(fees),
		AvgRisk:        risk / n,
	}
}

// SumMoney adds amounts as decimals and converts the total back to float64.
// Non-finite amounts are skipped.
func SumMoney(amounts []float64) float64 {
	var total apd.Decimal
	for _, amount := range amounts {
		var d apd.Decimal
		if _, err := d.SetFloat64(amount); err != nil {
			continue
		}
		if d.Form != apd.Finite {
			continue
		}
		_, _ = moneyContext.Add(&total, &total, &d)
	}

	f, err := total.Float64()
	if err != nil {
		return 0
	}
	return f
}
