package contracts

// EnrichedCustomer is a Customer plus its derived KPIs
// ⭐ SSOT: KPI Engine → 화면/API 전달
type EnrichedCustomer struct {
	Customer

	// Profitability & efficiency
	LifetimeFees      float64 `json:"lifetime_fees"`
	AnnualFeeRevenue  float64 `json:"annual_fee_revenue"`
	FeeRevenueRate    float64 `json:"fee_revenue_rate"` // percent
	FeeOptimization   float64 `json:"fee_optimization"`
	LoanDepositSpread float64 `json:"loan_deposit_spread"`
	RevenuePerProduct float64 `json:"revenue_per_product"`

	// Value & engagement
	TenureYears          float64 `json:"tenure_years"`
	CLV                  float64 `json:"clv"`
	ProductCount         int     `json:"product_count"`
	CrossSellOpportunity float64 `json:"cross_sell_opportunity"` // percent
	WalletShare          float64 `json:"wallet_share"`           // percent, capped at 999
	LoyaltyScore         int     `json:"loyalty_score"`          // 0 ~ 4

	// Risk
	RiskCategory        RiskCategory `json:"risk_category"`
	RiskAdjustedRevenue float64      `json:"risk_adjusted_revenue"`
	DebtToIncome        float64      `json:"debt_to_income"` // percent

	// Portfolio health
	NetPosition       NetPosition `json:"net_position"`
	LiquidityRatio    float64     `json:"liquidity_ratio"`     // 999 = not applicable
	AssetBackingRatio float64     `json:"asset_backing_ratio"` // percent, 100 = not applicable
}

// RiskCategory is the banded risk label of a customer
type RiskCategory struct {
	Label    string       `json:"label"`
	Severity RiskSeverity `json:"severity"`
	Color    string       `json:"color"`
}

// NetPosition is deposits minus loans with a directional label
type NetPosition struct {
	Value float64 `json:"value"`
	Type  string  `json:"type"` // NetDepositor | NetBorrower
}

// IsDepositor reports whether the customer holds at least as much as they owe
func (n NetPosition) IsDepositor() bool {
	return n.Type == NetDepositor
}

// PortfolioAverages holds the means used for relative comparison
// Computed per filtered set, never cached.
type PortfolioAverages struct {
	AvgCLV            float64 `json:"avg_clv"`
	AvgRisk           float64 `json:"avg_risk"`
	AvgFees           float64 `json:"avg_fees"`
	AvgProductCount   float64 `json:"avg_product_count"`
	AvgWalletShare    float64 `json:"avg_wallet_share"`
	AvgDebtToIncome   float64 `json:"avg_debt_to_income"`
	AvgLiquidityRatio float64 `json:"avg_liquidity_ratio"`
	AvgTenure         float64 `json:"avg_tenure"`
}

// QuickMetrics is the headline strip above the customer table
type QuickMetrics struct {
	TotalCustomers int     `json:"total_customers"`
	AvgCLV         float64 `json:"avg_clv"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgRisk        float64 `json:"avg_risk"`
}
