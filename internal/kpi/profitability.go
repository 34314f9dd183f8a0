package kpi

import (
	"math"

	"github.com/wonny/c360/internal/contracts"
)

// LifetimeFees is the total fees collected from the customer
func LifetimeFees(c contracts.Customer) float64 {
	return c.TotalFees
}

// AnnualFeeRevenue annualises total fees over the engagement period
func AnnualFeeRevenue(c contracts.Customer) float64 {
	return c.TotalFees / atLeastOne(c.EngagementDays) * DaysPerYear
}

// FeeRevenueRate is the fee rate in percent implied by the fee structure
func FeeRevenueRate(c contracts.Customer) float64 {
	return c.FeeStructure.RatePct()
}

// FeeOptimization is the headroom between a 5% fee on balances and fees already paid
func FeeOptimization(c contracts.Customer) float64 {
	potential := (c.TotalLoan + c.TotalDeposit) * TargetFeeRate
	return math.Max(0, potential-c.TotalFees)
}

// LoanDepositSpread is lending revenue minus the cost of deposits
func LoanDepositSpread(c contracts.Customer) float64 {
	return c.TotalLoan*LendingRate - c.TotalDeposit*DepositCost
}

// RevenuePerProduct spreads total fees over held products
func RevenuePerProduct(c contracts.Customer) float64 {
	products := ProductCount(c)
	if products <= 0 {
		return 0
	}
	return c.TotalFees / float64(products)
}
