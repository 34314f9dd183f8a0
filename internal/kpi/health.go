package kpi

import "github.com/wonny/c360/internal/contracts"

// NetPositionOf returns deposits minus loans with its direction
func NetPositionOf(c contracts.Customer) contracts.NetPosition {
	value := c.TotalDeposit - c.TotalLoan

	kind := contracts.NetDepositor
	if value < 0 {
		kind = contracts.NetBorrower
	}
	return contracts.NetPosition{Value: value, Type: kind}
}

// LiquidityRatio is deposits over loans, LiquidityNotApplicable without a loan
func LiquidityRatio(c contracts.Customer) float64 {
	if c.TotalLoan <= 0 {
		return LiquidityNotApplicable
	}
	return c.TotalDeposit / c.TotalLoan
}

// AssetBackingRatio is (properties × 500k + super) over loans in percent,
// AssetBackingNotApplicable without a loan.
func AssetBackingRatio(c contracts.Customer) float64 {
	if c.TotalLoan <= 0 {
		return AssetBackingNotApplicable
	}
	assets := c.PropertiesOwned*PropertyValue + c.SuperannuationSavings
	return assets / atLeastOne(c.TotalLoan) * 100
}

// LiquidityDisplayable reports whether a liquidity ratio should be shown as a number.
// The dashboard renders "N/A" above 100.
func LiquidityDisplayable(ratio float64) bool {
	return ratio <= LiquidityAverageCeiling
}
