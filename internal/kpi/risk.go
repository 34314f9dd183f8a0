package kpi

import (
	"math"

	"github.com/wonny/c360/internal/contracts"
)

// Risk band upper bounds (inclusive)
const (
	lowRiskMax      = 25
	moderateRiskMax = 50
	highRiskMax     = 75
)

// RiskCategoryFor bands a risk weighting:
// ≤25 Low, ≤50 Moderate, ≤75 High, otherwise Critical.
// NaN is read as 0, the same as a missing cell in the dataset.
func RiskCategoryFor(riskWeighting float64) contracts.RiskCategory {
	if math.IsNaN(riskWeighting) {
		riskWeighting = 0
	}

	var severity contracts.RiskSeverity
	switch {
	case riskWeighting <= lowRiskMax:
		severity = contracts.SeverityLow
	case riskWeighting <= moderateRiskMax:
		severity = contracts.SeverityModerate
	case riskWeighting <= highRiskMax:
		severity = contracts.SeverityHigh
	default:
		severity = contracts.SeverityCritical
	}

	return contracts.RiskCategory{
		Label:    severity.String(),
		Severity: severity,
		Color:    severity.Color(),
	}
}

// RiskAdjustedRevenue scales fees by the inverse risk weighting.
// A zero weighting is treated as 1.
func RiskAdjustedRevenue(c contracts.Customer) float64 {
	weighting := c.RiskWeighting
	if weighting == 0 {
		weighting = 1
	}
	return c.TotalFees / (weighting / 100)
}

// DebtToIncome is total loans as a percentage of estimated income
func DebtToIncome(c contracts.Customer) float64 {
	return c.TotalLoan / atLeastOne(c.EstimatedIncome) * 100
}
