package selection

import (
	"sort"
	"strings"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/dashconfig"
	"github.com/wonny/c360/internal/kpi"
	"github.com/wonny/c360/pkg/logger"
)

// Screener applies the dashboard filters to raw customers
// ⭐ SSOT: 필터 순서(revenue → risk → categorical → search)는 여기서만
type Screener struct {
	config ScreenerConfig
	logger *logger.Logger
}

// ScreenerConfig defines tier thresholds
// SSOT: config/dashboard/customer_360.yaml tiers
type ScreenerConfig struct {
	RevenueLowPercentile  float64 // Low: fees <= p(25)
	RevenueHighPercentile float64 // High: fees >= p(75)
	RiskHighAbove         float64 // High: risk > 60
	RiskLowBelow          float64 // Low: risk < 30
}

// DefaultScreenerConfig returns the standard dashboard thresholds
func DefaultScreenerConfig() ScreenerConfig {
	return ScreenerConfigFrom(dashconfig.Default())
}

// ScreenerConfigFrom reads thresholds from a dashboard config
func ScreenerConfigFrom(cfg *dashconfig.Config) ScreenerConfig {
	return ScreenerConfig{
		RevenueLowPercentile:  cfg.Tiers.Revenue.LowPercentile,
		RevenueHighPercentile: cfg.Tiers.Revenue.HighPercentile,
		RiskHighAbove:         cfg.Tiers.Risk.HighAbove,
		RiskLowBelow:          cfg.Tiers.Risk.LowBelow,
	}
}

// NewScreener creates a new screener
func NewScreener(config ScreenerConfig, logger *logger.Logger) *Screener {
	return &Screener{
		config: config,
		logger: logger,
	}
}

// Select filters records in a fixed stage order. Percentile thresholds are
// computed over each stage's input, so reordering stages changes results.
// The input slice is never modified; the result is a fresh slice.
func (s *Screener) Select(records []contracts.Customer, f contracts.FilterState, search string) []contracts.Customer {
	stages := make(map[string]int, 4)

	out := records
	if f.HasPrimaryFilters() {
		out = s.byRevenue(out, f.Revenue)
		stages["revenue"] = len(out)

		out = s.byRisk(out, f.Risk)
		stages["risk"] = len(out)
	}

	// categorical always copies, so the caller's slice stays untouched
	out = byCategory(out, f)
	stages["categorical"] = len(out)

	out = bySearch(out, search)
	stages["search"] = len(out)

	s.logger.WithFields(map[string]interface{}{
		"total_input": len(records),
		"passed":      len(out),
		"stages":      stages,
	}).Debug("Selection completed")

	return out
}

// RevenueThresholds returns the low and high fee percentiles of records
func (s *Screener) RevenueThresholds(records []contracts.Customer) (low, high float64) {
	fees := make([]float64, len(records))
	for i, c := range records {
		fees[i] = c.TotalFees
	}
	sort.Float64s(fees)

	if len(fees) == 0 {
		return 0, 0
	}
	return percentileSorted(fees, s.config.RevenueLowPercentile), percentileSorted(fees, s.config.RevenueHighPercentile)
}

func (s *Screener) byRevenue(records []contracts.Customer, tier contracts.RevenueTier) []contracts.Customer {
	if tier != contracts.TierHigh && tier != contracts.TierLow {
		return keep(records, nil)
	}

	low, high := s.RevenueThresholds(records)
	if tier == contracts.TierHigh {
		return keep(records, func(c contracts.Customer) bool { return c.TotalFees >= high })
	}
	return keep(records, func(c contracts.Customer) bool { return c.TotalFees <= low })
}

func (s *Screener) byRisk(records []contracts.Customer, tier contracts.RiskTier) []contracts.Customer {
	switch tier {
	case contracts.TierHigh:
		return keep(records, func(c contracts.Customer) bool { return c.RiskWeighting > s.config.RiskHighAbove })
	case contracts.TierLow:
		return keep(records, func(c contracts.Customer) bool { return c.RiskWeighting < s.config.RiskLowBelow })
	}
	return records
}

func byCategory(records []contracts.Customer, f contracts.FilterState) []contracts.Customer {
	return keep(records, func(c contracts.Customer) bool {
		if !contracts.IsAll(f.Gender) && c.Gender != f.Gender {
			return false
		}
		if !contracts.IsAll(f.Relationship) && c.RelationshipCode != f.Relationship {
			return false
		}
		if !contracts.IsAll(f.Advisor) && c.BankingContact != f.Advisor {
			return false
		}
		return f.Tenure.Contains(kpi.TenureYears(c))
	})
}

func bySearch(records []contracts.Customer, search string) []contracts.Customer {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return records
	}

	return keep(records, func(c contracts.Customer) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.ClientID), term)
	})
}

// keep copies the records matching pred into a new slice (nil pred keeps all)
func keep(records []contracts.Customer, pred func(contracts.Customer) bool) []contracts.Customer {
	out := make([]contracts.Customer, 0, len(records))
	for _, c := range records {
		if pred == nil || pred(c) {
			out = append(out, c)
		}
	}
	return out
}
