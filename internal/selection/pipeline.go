package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/dashconfig"
	"github.com/wonny/c360/internal/kpi"
	"github.com/wonny/c360/pkg/logger"
)

// ErrCustomerNotFound is returned by Profile for an unknown client id
var ErrCustomerNotFound = errors.New("customer not found")

// ErrInvalidLimit is returned by ParseLimit
var ErrInvalidLimit = errors.New("invalid limit")

var _ contracts.Selector = (*Screener)(nil)

// Query is one dashboard request: filters, search, sort and row limit
type Query struct {
	Filters contracts.FilterState `json:"filters"`
	Search  string                `json:"search,omitempty"`
	Sort    contracts.SortSpec    `json:"sort"`
	Limit   int                   `json:"limit"` // 0 = all
}

// Result is the filtered, sorted and limited customer list.
// Total, Averages and Summary cover the whole filtered set, before Limit.
type Result struct {
	Customers []contracts.EnrichedCustomer `json:"customers"`
	Total     int                          `json:"total"`
	Averages  contracts.PortfolioAverages  `json:"averages"`
	Summary   contracts.QuickMetrics       `json:"summary"`
	Filters   contracts.FilterState        `json:"filters"`
	Sort      contracts.SortSpec           `json:"sort"`
	Limit     int                          `json:"limit"`
}

// Profile is the detail view of one customer against the filtered portfolio
type Profile struct {
	Customer           contracts.EnrichedCustomer  `json:"customer"`
	RelationshipName   string                      `json:"relationship_name"`
	Averages           contracts.PortfolioAverages `json:"averages"`
	Comparisons        kpi.CustomerComparisons     `json:"comparisons"`
	Benchmark          []kpi.BenchmarkPoint        `json:"benchmark"`
	RevenueComposition []kpi.Slice                 `json:"revenue_composition"`
	ProductPortfolio   []kpi.Slice                 `json:"product_portfolio"`
	LiquidityShown     bool                        `json:"liquidity_shown"`
}

// Pipeline composes Select → Enrich → Sort → Limit
// ⭐ SSOT: 대시보드 요청 처리 흐름은 여기서만
type Pipeline struct {
	screener *Screener
	sorter   *Sorter
	display  dashconfig.Display
	logger   *logger.Logger
}

// NewPipeline builds a pipeline from a dashboard config
func NewPipeline(cfg *dashconfig.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		screener: NewScreener(ScreenerConfigFrom(cfg), log),
		sorter:   NewSorter(cfg.Display.Collation),
		display:  cfg.Display,
		logger:   log,
	}
}

// Screener exposes the pipeline's filter stage
func (p *Pipeline) Screener() *Screener {
	return p.screener
}

// DefaultQuery returns a query with every filter at All and the configured
// default sort and limit.
func (p *Pipeline) DefaultQuery() Query {
	sortSpec := contracts.DefaultSortSpec()
	if field, err := contracts.ParseSortField(p.display.DefaultSort); err == nil {
		sortSpec.Field = field
	}
	if dir, err := contracts.ParseSortDirection(p.display.DefaultDirection); err == nil {
		sortSpec.Direction = dir
	}

	return Query{
		Filters: contracts.DefaultFilterState(),
		Sort:    sortSpec,
		Limit:   p.display.DefaultLimit,
	}
}

// Run executes the query over records
func (p *Pipeline) Run(records []contracts.Customer, q Query) Result {
	selected := p.screener.Select(records, q.Filters, q.Search)
	enriched := kpi.EnrichAll(selected)

	result := Result{
		Total:    len(enriched),
		Averages: kpi.AveragesOf(enriched),
		Summary:  kpi.Summarize(enriched),
		Filters:  q.Filters,
		Sort:     q.Sort,
		Limit:    q.Limit,
	}
	result.Customers = Limit(p.sorter.Sort(enriched, q.Sort), q.Limit)

	p.logger.WithFields(map[string]interface{}{
		"input":    len(records),
		"filtered": result.Total,
		"returned": len(result.Customers),
		"sort":     string(q.Sort.Field),
		"dir":      string(q.Sort.Direction),
	}).Debug("Pipeline run")

	return result
}

// Averages returns portfolio averages over the query's filtered set
func (p *Pipeline) Averages(records []contracts.Customer, q Query) contracts.PortfolioAverages {
	return kpi.Averages(p.screener.Select(records, q.Filters, q.Search))
}

// Profile looks up clientID in records and compares it against the
// averages of the query's filtered set. The customer does not need to
// pass the filters.
func (p *Pipeline) Profile(records []contracts.Customer, q Query, clientID string) (*Profile, error) {
	snap := contracts.Snapshot{Customers: records}
	c, ok := snap.Find(clientID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, clientID)
	}

	e := kpi.Enrich(c)
	avg := p.Averages(records, q)

	return &Profile{
		Customer:           e,
		RelationshipName:   contracts.RelationshipName(c.RelationshipCode),
		Averages:           avg,
		Comparisons:        kpi.CompareCustomer(e, avg),
		Benchmark:          kpi.Benchmark(e, avg),
		RevenueComposition: kpi.RevenueComposition(e),
		ProductPortfolio:   kpi.ProductPortfolio(c),
		LiquidityShown:     kpi.LiquidityDisplayable(e.LiquidityRatio),
	}, nil
}

// ParseLimit parses a row limit: "" → def, "all" → 0, otherwise a positive integer
func ParseLimit(s string, def int) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return def, nil
	case "all":
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &contracts.ParseError{Field: "limit", Value: s, Err: ErrInvalidLimit}
	}
	return n, nil
}
