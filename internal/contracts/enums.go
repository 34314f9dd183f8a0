package contracts

import "strings"

// LoyaltyTier is the loyalty classification of a customer
type LoyaltyTier string

const (
	LoyaltyUnknown  LoyaltyTier = ""
	LoyaltyJade     LoyaltyTier = "Jade"
	LoyaltySilver   LoyaltyTier = "Silver"
	LoyaltyGold     LoyaltyTier = "Gold"
	LoyaltyPlatinum LoyaltyTier = "Platinum"
)

// ParseLoyaltyTier parses a loyalty label case-insensitively.
// Unknown labels map to LoyaltyUnknown.
func ParseLoyaltyTier(s string) LoyaltyTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jade":
		return LoyaltyJade
	case "silver":
		return LoyaltySilver
	case "gold":
		return LoyaltyGold
	case "platinum":
		return LoyaltyPlatinum
	default:
		return LoyaltyUnknown
	}
}

// Score returns the loyalty score (Platinum 4 ... Jade 1, unknown 0)
func (t LoyaltyTier) Score() int {
	switch t {
	case LoyaltyPlatinum:
		return 4
	case LoyaltyGold:
		return 3
	case LoyaltySilver:
		return 2
	case LoyaltyJade:
		return 1
	case LoyaltyUnknown:
		return 0
	}
	return 0
}

// FeeStructure is the fee-structure tier of a customer
type FeeStructure string

const (
	FeeUnknown FeeStructure = ""
	FeeLow     FeeStructure = "Low"
	FeeMid     FeeStructure = "Mid"
	FeeHigh    FeeStructure = "High"
)

// ParseFeeStructure parses a fee-structure label case-insensitively.
// Unknown labels map to FeeUnknown.
func ParseFeeStructure(s string) FeeStructure {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return FeeLow
	case "mid":
		return FeeMid
	case "high":
		return FeeHigh
	default:
		return FeeUnknown
	}
}

// RatePct returns the fee revenue rate in percent (High 5, Mid 3, Low 1, unknown 0)
func (f FeeStructure) RatePct() float64 {
	switch f {
	case FeeHigh:
		return 5
	case FeeMid:
		return 3
	case FeeLow:
		return 1
	case FeeUnknown:
		return 0
	}
	return 0
}

// RiskSeverity orders risk categories from Low (1) to Critical (4)
type RiskSeverity int

const (
	SeverityLow RiskSeverity = iota + 1
	SeverityModerate
	SeverityHigh
	SeverityCritical
)

// String returns the dashboard label
func (s RiskSeverity) String() string {
	switch s {
	case SeverityLow:
		return "Low Risk"
	case SeverityModerate:
		return "Moderate Risk"
	case SeverityHigh:
		return "High Risk"
	case SeverityCritical:
		return "Critical Risk"
	}
	return "Unknown Risk"
}

// Color returns the badge colour used by the rendering layer
func (s RiskSeverity) Color() string {
	switch s {
	case SeverityLow:
		return "green"
	case SeverityModerate:
		return "yellow"
	default:
		return "red"
	}
}

// Net position labels
const (
	NetDepositor = "Net Depositor"
	NetBorrower  = "Net Borrower"
)
