package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// All is the "no filter" sentinel for every selector
const All = "All"

var (
	ErrUnknownTier      = errors.New("unknown tier")
	ErrUnknownTenure    = errors.New("unknown tenure bucket")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// ParseError reports a selector value that is not part of its closed set
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tier is a percentile/threshold selector: All, High or Low
type Tier string

const (
	TierAll  Tier = All
	TierHigh Tier = "High"
	TierLow  Tier = "Low"
)

// RevenueTier selects the top or bottom quartile of total fees
type RevenueTier = Tier

// RiskTier selects high (> 60) or low (< 30) risk weighting
type RiskTier = Tier

// ParseTier parses All/High/Low case-insensitively; empty means All
func ParseTier(field, s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TierAll, nil
	case "high":
		return TierHigh, nil
	case "low":
		return TierLow, nil
	}
	return TierAll, &ParseError{Field: field, Value: s, Err: ErrUnknownTier}
}

// TenureBucket is a right-open range on tenure years
type TenureBucket string

const (
	TenureAll     TenureBucket = All
	TenureUnder5  TenureBucket = "< 5 Years"
	TenureUnder10 TenureBucket = "< 10 Years"
	TenureUnder20 TenureBucket = "< 20 Years"
	TenureOver20  TenureBucket = "> 20 Years"
)

// ParseTenureBucket accepts the dashboard labels plus short aliases (lt5, lt10, lt20, gt20)
func ParseTenureBucket(s string) (TenureBucket, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "all":
		return TenureAll, nil
	case "<5years", "lt5":
		return TenureUnder5, nil
	case "<10years", "lt10":
		return TenureUnder10, nil
	case "<20years", "lt20":
		return TenureUnder20, nil
	case ">20years", "gt20":
		return TenureOver20, nil
	}
	return TenureAll, &ParseError{Field: "tenure", Value: s, Err: ErrUnknownTenure}
}

// Contains reports whether tenureYears falls in the bucket.
// Ranges: [0,5), [0,10), [0,20), [20,∞).
func (b TenureBucket) Contains(tenureYears float64) bool {
	switch b {
	case TenureUnder5:
		return tenureYears < 5
	case TenureUnder10:
		return tenureYears < 10
	case TenureUnder20:
		return tenureYears < 20
	case TenureOver20:
		return tenureYears >= 20
	case TenureAll:
		return true
	}
	return true
}

// FilterState is the dashboard filter snapshot, passed by value
type FilterState struct {
	Gender       string       `json:"gender"`
	Relationship string       `json:"relationship"`
	Advisor      string       `json:"advisor"`
	Tenure       TenureBucket `json:"tenure"`
	Revenue      RevenueTier  `json:"revenue"`
	Risk         RiskTier     `json:"risk"`
}

// DefaultFilterState returns a state with every selector set to All
func DefaultFilterState() FilterState {
	return FilterState{
		Gender:       All,
		Relationship: All,
		Advisor:      All,
		Tenure:       TenureAll,
		Revenue:      TierAll,
		Risk:         TierAll,
	}
}

// IsAll reports whether a demographic selector value means "no filter"
func IsAll(v string) bool {
	return v == "" || v == All
}

// HasPrimaryFilters reports whether the revenue or risk tier is active
func (f FilterState) HasPrimaryFilters() bool {
	return !IsAll(string(f.Revenue)) || !IsAll(string(f.Risk))
}

// SortField is a sortable column of the customer table
type SortField string

const (
	SortRevenue SortField = "revenue" // lifetime fees
	SortCLV     SortField = "clv"
	SortRisk    SortField = "risk" // risk weighting
	SortName    SortField = "name"
)

// ParseSortField parses a sort column; empty means revenue
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "revenue", "fees", "lifetime_fees":
		return SortRevenue, nil
	case "clv":
		return SortCLV, nil
	case "risk", "risk_weighting":
		return SortRisk, nil
	case "name":
		return SortName, nil
	}
	return SortRevenue, &ParseError{Field: "sort", Value: s, Err: ErrUnknownSortField}
}

// SortDirection is asc or desc
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection parses asc/desc; empty means desc
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	}
	return Desc, &ParseError{Field: "dir", Value: s, Err: ErrUnknownDirection}
}

// SortSpec is the active sort column and direction
type SortSpec struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortSpec sorts by lifetime fees, highest first
func DefaultSortSpec() SortSpec {
	return SortSpec{Field: SortRevenue, Direction: Desc}
}

// Toggle returns the spec after a header click:
// same field flips direction, a new field starts descending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field {
		if s.Direction == Desc {
			return SortSpec{Field: field, Direction: Asc}
		}
		return SortSpec{Field: field, Direction: Desc}
	}
	return SortSpec{Field: field, Direction: Desc}
}
