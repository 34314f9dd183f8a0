package kpi

import "github.com/wonny/c360/internal/contracts"

// Enrich derives all KPIs for one customer. The input is copied, never mutated.
func Enrich(c contracts.Customer) contracts.EnrichedCustomer {
	return contracts.EnrichedCustomer{
		Customer: c,

		LifetimeFees:      LifetimeFees(c),
		AnnualFeeRevenue:  AnnualFeeRevenue(c),
		FeeRevenueRate:    FeeRevenueRate(c),
		FeeOptimization:   FeeOptimization(c),
		LoanDepositSpread: LoanDepositSpread(c),
		RevenuePerProduct: RevenuePerProduct(c),

		TenureYears:          TenureYears(c),
		CLV:                  CLV(c),
		ProductCount:         ProductCount(c),
		CrossSellOpportunity: CrossSellOpportunity(c),
		WalletShare:          WalletShare(c),
		LoyaltyScore:         LoyaltyScore(c),

		RiskCategory:        RiskCategoryFor(c.RiskWeighting),
		RiskAdjustedRevenue: RiskAdjustedRevenue(c),
		DebtToIncome:        DebtToIncome(c),

		NetPosition:       NetPositionOf(c),
		LiquidityRatio:    LiquidityRatio(c),
		AssetBackingRatio: AssetBackingRatio(c),
	}
}

// EnrichAll enriches every customer, preserving order
func EnrichAll(customers []contracts.Customer) []contracts.EnrichedCustomer {
	enriched := make([]contracts.EnrichedCustomer, len(customers))
	for i, c := range customers {
		enriched[i] = Enrich(c)
	}
	return enriched
}
