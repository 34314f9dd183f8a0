package dashconfig

import "time"

// Config는 대시보드 선택 파이프라인의 전체 설정
type Config struct {
	Meta    Meta    `yaml:"meta" json:"meta"`
	Tiers   Tiers   `yaml:"tiers" json:"tiers"`
	Display Display `yaml:"display" json:"display"`
	Refresh Refresh `yaml:"refresh" json:"refresh"`
}

// Meta 메타 정보
type Meta struct {
	DashboardID string `yaml:"dashboard_id" json:"dashboard_id"`
	Version     string `yaml:"version" json:"version"`
}

// Tiers holds the thresholds for the revenue and risk tier filters
type Tiers struct {
	Revenue RevenueTier `yaml:"revenue" json:"revenue"`
	Risk    RiskTier    `yaml:"risk" json:"risk"`
}

// RevenueTier thresholds are percentiles of lifetime fees, computed over the
// set being filtered.
type RevenueTier struct {
	LowPercentile  float64 `yaml:"low_percentile" json:"low_percentile"`   // Low: fees <= p(low)
	HighPercentile float64 `yaml:"high_percentile" json:"high_percentile"` // High: fees >= p(high)
}

// RiskTier thresholds are absolute risk weightings
type RiskTier struct {
	HighAbove float64 `yaml:"high_above" json:"high_above"` // High: risk > high_above
	LowBelow  float64 `yaml:"low_below" json:"low_below"`   // Low: risk < low_below
}

type Display struct {
	DefaultLimit     int    `yaml:"default_limit" json:"default_limit"` // 0 = all
	LimitOptions     []int  `yaml:"limit_options" json:"limit_options"`
	DefaultSort      string `yaml:"default_sort" json:"default_sort"`
	DefaultDirection string `yaml:"default_direction" json:"default_direction"`
	Collation        string `yaml:"collation" json:"collation"` // BCP 47 tag for name sorting
}

// Refresh 스냅샷 재적재 주기
type Refresh struct {
	Schedule string `yaml:"schedule" json:"schedule"` // cron with seconds, empty = disabled
}

// Enabled reports whether periodic reload is configured
func (r Refresh) Enabled() bool {
	return r.Schedule != ""
}

// Stamp identifies the configuration a response was computed with
type Stamp struct {
	ConfigHash  string    `json:"config_hash"`
	DashboardID string    `json:"dashboard_id"`
	Version     string    `json:"version"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Default returns the built-in dashboard configuration
func Default() *Config {
	return &Config{
		Meta: Meta{
			DashboardID: "customer_360",
			Version:     "1",
		},
		Tiers: Tiers{
			Revenue: RevenueTier{LowPercentile: 25, HighPercentile: 75},
			Risk:    RiskTier{HighAbove: 60, LowBelow: 30},
		},
		Display: Display{
			DefaultLimit:     50,
			LimitOptions:     []int{20, 50, 100},
			DefaultSort:      "revenue",
			DefaultDirection: "desc",
			Collation:        "en",
		},
		Refresh: Refresh{
			Schedule: "0 */15 * * * *",
		},
	}
}
