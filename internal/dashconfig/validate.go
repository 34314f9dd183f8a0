package dashconfig

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/wonny/c360/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// scheduleParser matches the scheduler's cron.WithSeconds() format
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.DashboardID == "" {
		return ValidationError{"meta.dashboard_id", "required"}
	}

	// === Tiers ===
	rev := cfg.Tiers.Revenue
	if err := validatePercentile(rev.LowPercentile, "tiers.revenue.low_percentile"); err != nil {
		return err
	}
	if err := validatePercentile(rev.HighPercentile, "tiers.revenue.high_percentile"); err != nil {
		return err
	}
	if rev.LowPercentile >= rev.HighPercentile {
		return ValidationError{"tiers.revenue", "low_percentile must be < high_percentile"}
	}

	risk := cfg.Tiers.Risk
	if risk.LowBelow < 0 || risk.HighAbove > 100 {
		return ValidationError{"tiers.risk", "thresholds must be in [0, 100]"}
	}
	if risk.LowBelow > risk.HighAbove {
		return ValidationError{"tiers.risk", "low_below must be <= high_above"}
	}

	// === Display ===
	d := cfg.Display
	if d.DefaultLimit < 0 {
		return ValidationError{"display.default_limit", "must be >= 0"}
	}
	for i, opt := range d.LimitOptions {
		if opt <= 0 {
			return ValidationError{fmt.Sprintf("display.limit_options[%d]", i), "must be > 0"}
		}
		if i > 0 && opt <= d.LimitOptions[i-1] {
			return ValidationError{"display.limit_options", "must be strictly increasing"}
		}
	}
	if _, err := contracts.ParseSortField(d.DefaultSort); err != nil {
		return ValidationError{"display.default_sort", err.Error()}
	}
	if _, err := contracts.ParseSortDirection(d.DefaultDirection); err != nil {
		return ValidationError{"display.default_direction", err.Error()}
	}
	if _, err := language.Parse(d.Collation); err != nil {
		return ValidationError{"display.collation", fmt.Sprintf("invalid language tag %q", d.Collation)}
	}

	// === Refresh ===
	if cfg.Refresh.Enabled() {
		if _, err := scheduleParser.Parse(cfg.Refresh.Schedule); err != nil {
			return ValidationError{"refresh.schedule", err.Error()}
		}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Tiers.Revenue.HighPercentile-cfg.Tiers.Revenue.LowPercentile < 20 {
		warnings = append(warnings, Warning{
			Code:    "NARROW_REVENUE_BAND",
			Message: "revenue tier percentiles less than 20 apart: Low and High overlap on small sets",
		})
	}

	if cfg.Tiers.Risk.HighAbove-cfg.Tiers.Risk.LowBelow < 10 {
		warnings = append(warnings, Warning{
			Code:    "NARROW_RISK_BAND",
			Message: "risk tier thresholds less than 10 apart",
		})
	}

	if cfg.Display.DefaultLimit == 0 {
		warnings = append(warnings, Warning{
			Code:    "UNLIMITED_DEFAULT",
			Message: "default_limit 0 returns every customer per request",
		})
	}

	if !cfg.Refresh.Enabled() {
		warnings = append(warnings, Warning{
			Code:    "NO_REFRESH",
			Message: "refresh.schedule empty: snapshot only reloads on demand",
		})
	}

	return warnings
}

// === Helper Functions ===

func validatePercentile(p float64, field string) error {
	if p < 0 || p > 100 {
		return ValidationError{field, "must be in range [0, 100]"}
	}
	return nil
}
