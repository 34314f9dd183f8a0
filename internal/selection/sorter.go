package selection

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wonny/c360/internal/contracts"
)

// Sorter orders enriched customers by a SortSpec.
// Names compare with locale-aware collation (case-insensitive at the
// primary level, so "alice" sorts between "Adam" and "Bob").
type Sorter struct {
	tag language.Tag
}

// NewSorter creates a sorter for a BCP 47 collation tag; an invalid tag
// falls back to English.
func NewSorter(collation string) *Sorter {
	tag, err := language.Parse(collation)
	if err != nil {
		tag = language.English
	}
	return &Sorter{tag: tag}
}

// Sort returns a stably sorted copy of items. Ties keep their input order.
func (s *Sorter) Sort(items []contracts.EnrichedCustomer, spec contracts.SortSpec) []contracts.EnrichedCustomer {
	out := make([]contracts.EnrichedCustomer, len(items))
	copy(out, items)

	less := s.lessFunc(spec.Field)
	if spec.Direction == contracts.Asc {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(out[j], out[i]) })
	}
	return out
}

func (s *Sorter) lessFunc(field contracts.SortField) func(a, b contracts.EnrichedCustomer) bool {
	switch field {
	case contracts.SortCLV:
		return func(a, b contracts.EnrichedCustomer) bool { return a.CLV < b.CLV }
	case contracts.SortRisk:
		return func(a, b contracts.EnrichedCustomer) bool { return a.RiskWeighting < b.RiskWeighting }
	case contracts.SortName:
		// Collator is not safe for concurrent use: one per sort
		col := collate.New(s.tag)
		return func(a, b contracts.EnrichedCustomer) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case contracts.SortRevenue:
		return func(a, b contracts.EnrichedCustomer) bool { return a.LifetimeFees < b.LifetimeFees }
	}
	return func(a, b contracts.EnrichedCustomer) bool { return a.LifetimeFees < b.LifetimeFees }
}

// Limit truncates items to n after sorting; n <= 0 keeps everything
func Limit(items []contracts.EnrichedCustomer, n int) []contracts.EnrichedCustomer {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
