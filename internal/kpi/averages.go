package kpi

import "github.com/wonny/c360/internal/contracts"

// Averages computes portfolio means over a set of raw customers.
// An empty set yields all zeros.
func Averages(customers []contracts.Customer) contracts.PortfolioAverages {
	return AveragesOf(EnrichAll(customers))
}

// AveragesOf computes portfolio means over already enriched customers.
//
// The liquidity average only sums ratios below LiquidityAverageCeiling but
// still divides by the full set size.
func AveragesOf(enriched []contracts.EnrichedCustomer) contracts.PortfolioAverages {
	if len(enriched) == 0 {
		return contracts.PortfolioAverages{}
	}

	var clv, risk, fees, products, wallet, dti, liquidity, tenure float64
	for _, e := range enriched {
		clv += e.CLV
		risk += e.RiskWeighting
		fees += e.LifetimeFees
		products += float64(e.ProductCount)
		wallet += e.WalletShare
		dti += e.DebtToIncome
		tenure += e.TenureYears

		if e.LiquidityRatio < LiquidityAverageCeiling {
			liquidity += e.LiquidityRatio
		}
	}

	n := float64(len(enriched))
	return contracts.PortfolioAverages{
		AvgCLV:            clv / n,
		AvgRisk:           risk / n,
		AvgFees:           fees / n,
		AvgProductCount:   products / n,
		AvgWalletShare:    wallet / n,
		AvgDebtToIncome:   dti / n,
		AvgLiquidityRatio: liquidity / n,
		AvgTenure:         tenure / n,
	}
}
