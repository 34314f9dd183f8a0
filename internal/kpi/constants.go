// Package kpi derives per-customer financial KPIs and portfolio averages.
//
// Every function here is pure and total: absent numbers are zero, divisors
// that could be zero are replaced by 1, and ratios that are not meaningful
// return the named sentinels below instead of Inf or NaN.
// ⭐ SSOT: KPI 공식은 이 패키지에서만
package kpi

// Fixed model parameters
const (
	DaysPerYear      = 365
	ProjectionYears  = 5     // CLV horizon
	MaxProducts      = 7     // cross-sell denominator
	TargetFeeRate    = 0.05  // fee optimisation target on loans+deposits
	LendingRate      = 0.045 // loan revenue
	DepositCost      = 0.015 // cost of funds on deposits
	LoanContribution = 0.03  // loan share of CLV
	PropertyValue    = 500000
	WalletShareCap   = 999
)

// Sentinels. A ratio equal to one of these means "not applicable"
// (no loan outstanding), not a measured value.
const (
	// LiquidityNotApplicable is returned when the customer has no loan
	LiquidityNotApplicable = 999
	// AssetBackingNotApplicable is returned when the customer has no loan
	AssetBackingNotApplicable = 100
	// LiquidityAverageCeiling: ratios at or above it are left out of the
	// liquidity average numerator (they still count in the denominator)
	LiquidityAverageCeiling = 100
)

// atLeastOne guards a denominator: values below 1 (including 0) become 1
func atLeastOne(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
