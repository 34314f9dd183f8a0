package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

func newTestScreener() *Screener {
	return NewScreener(DefaultScreenerConfig(), logger.NewNop())
}

func ids(records []contracts.Customer) []string {
	out := make([]string, len(records))
	for i, c := range records {
		out[i] = c.ClientID
	}
	return out
}

func TestPercentileSorted(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 75, 0},
		{"single", []float64{42}, 25, 42},
		{"p75 of three", []float64{10, 500, 1000}, 75, 750},
		{"p25 of three", []float64{10, 500, 1000}, 25, 255},
		{"exact rank", []float64{1, 2, 3, 4, 5}, 75, 4},
		{"p0", []float64{1, 2, 3}, 0, 1},
		{"p100", []float64{1, 2, 3}, 100, 3},
		{"clamped", []float64{1, 2, 3}, 150, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentileSorted(tt.values, tt.p), 1e-9)
		})
	}
}

func TestRevenueThresholds_DoesNotReorder(t *testing.T) {
	s := newTestScreener()
	records := []contracts.Customer{
		{ClientID: "A", TotalFees: 1000},
		{ClientID: "B", TotalFees: 10},
		{ClientID: "C", TotalFees: 500},
	}

	low, high := s.RevenueThresholds(records)
	assert.InDelta(t, 255, low, 1e-9)
	assert.InDelta(t, 750, high, 1e-9)
	assert.Equal(t, []string{"A", "B", "C"}, ids(records))
}

func TestSelect_NoPrimaryFiltersStillCopies(t *testing.T) {
	s := newTestScreener()
	records := []contracts.Customer{{ClientID: "A"}, {ClientID: "B"}}

	out := s.Select(records, contracts.DefaultFilterState(), "")
	require.Len(t, out, 2)

	out[0].ClientID = "changed"
	assert.Equal(t, "A", records[0].ClientID)
}

func TestSelect_StageOrderMatters(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", TotalFees: 10, RiskWeighting: 70},
		{ClientID: "B", TotalFees: 1000, RiskWeighting: 20},
		{ClientID: "C", TotalFees: 500, RiskWeighting: 65},
	}
	s := newTestScreener()

	low, high := s.RevenueThresholds(records)
	assert.InDelta(t, 255, low, 1e-9)
	assert.InDelta(t, 750, high, 1e-9)

	f := contracts.DefaultFilterState()
	f.Revenue = contracts.TierHigh
	assert.Equal(t, []string{"B"}, ids(s.Select(records, f, "")))

	// B has risk 20, so revenue High then risk High is empty
	f.Risk = contracts.TierHigh
	assert.Empty(t, s.Select(records, f, ""))

	// risk first would leave {A, C} whose p75 is 377.5 and keep C
	riskFirst := s.byRisk(records, contracts.TierHigh)
	assert.Equal(t, []string{"C"}, ids(s.byRevenue(riskFirst, contracts.TierHigh)))
}

func TestSelect_RevenueLow(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", TotalFees: 10},
		{ClientID: "B", TotalFees: 1000},
		{ClientID: "C", TotalFees: 500},
		{ClientID: "D", TotalFees: 255},
	}
	f := contracts.DefaultFilterState()
	f.Revenue = contracts.TierLow

	// p25 over {10, 255, 500, 1000} = 10 + 0.75*245 = 193.75
	assert.Equal(t, []string{"A"}, ids(newTestScreener().Select(records, f, "")))
}

func TestSelect_RiskTiers(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", RiskWeighting: 60},
		{ClientID: "B", RiskWeighting: 61},
		{ClientID: "C", RiskWeighting: 30},
		{ClientID: "D", RiskWeighting: 29.9},
	}
	s := newTestScreener()

	f := contracts.DefaultFilterState()
	f.Risk = contracts.TierHigh
	assert.Equal(t, []string{"B"}, ids(s.Select(records, f, "")))

	f.Risk = contracts.TierLow
	assert.Equal(t, []string{"D"}, ids(s.Select(records, f, "")))
}

func TestSelect_Categorical(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", Gender: "Male", RelationshipCode: "1", BankingContact: "Anthony Torres", EngagementDays: 365},
		{ClientID: "B", Gender: "Female", RelationshipCode: "2", BankingContact: "Anthony Torres", EngagementDays: 365 * 12},
		{ClientID: "C", Gender: "Female", RelationshipCode: "1", BankingContact: "Jeremy Porter", EngagementDays: 365 * 25},
	}
	s := newTestScreener()

	tests := []struct {
		name string
		f    func(*contracts.FilterState)
		want []string
	}{
		{"all", func(*contracts.FilterState) {}, []string{"A", "B", "C"}},
		{"gender", func(f *contracts.FilterState) { f.Gender = "Female" }, []string{"B", "C"}},
		{"gender is case-sensitive", func(f *contracts.FilterState) { f.Gender = "female" }, []string{}},
		{"relationship", func(f *contracts.FilterState) { f.Relationship = "1" }, []string{"A", "C"}},
		{"advisor", func(f *contracts.FilterState) { f.Advisor = "Anthony Torres" }, []string{"A", "B"}},
		{"tenure under 10", func(f *contracts.FilterState) { f.Tenure = contracts.TenureUnder10 }, []string{"A"}},
		{"tenure over 20", func(f *contracts.FilterState) { f.Tenure = contracts.TenureOver20 }, []string{"C"}},
		{"unknown tenure is all", func(f *contracts.FilterState) { f.Tenure = "< 3 Years" }, []string{"A", "B", "C"}},
		{"combined", func(f *contracts.FilterState) {
			f.Gender = "Female"
			f.Relationship = "1"
		}, []string{"C"}},
		{"empty selectors are all", func(f *contracts.FilterState) { *f = contracts.FilterState{} }, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := contracts.DefaultFilterState()
			tt.f(&f)
			assert.Equal(t, tt.want, ids(s.Select(records, f, "")))
		})
	}
}

func TestSelect_TenureRightOpen(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "FIVE", EngagementDays: 5 * 365},
		{ClientID: "UNDER", EngagementDays: 5*365 - 1},
	}
	f := contracts.DefaultFilterState()
	f.Tenure = contracts.TenureUnder5

	assert.Equal(t, []string{"UNDER"}, ids(newTestScreener().Select(records, f, "")))
}

func TestSelect_Search(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "IND81288", Name: "Raymond Mills"},
		{ClientID: "IND65833", Name: "Julia Spencer"},
		{ClientID: "IND47499", Name: "Stephen Murray"},
	}
	s := newTestScreener()
	f := contracts.DefaultFilterState()

	assert.Equal(t, []string{"IND81288", "IND65833", "IND47499"}, ids(s.Select(records, f, "   ")))
	assert.Equal(t, []string{"IND81288", "IND47499"}, ids(s.Select(records, f, "  M")))
	assert.Equal(t, []string{"IND65833"}, ids(s.Select(records, f, "ind658")))
	assert.Empty(t, s.Select(records, f, "zzz"))
}

func TestSelect_SearchAppliedAfterPercentile(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", Name: "Alpha", TotalFees: 10},
		{ClientID: "B", Name: "Beta", TotalFees: 20},
		{ClientID: "C", Name: "Gamma", TotalFees: 30},
		{ClientID: "D", Name: "Delta", TotalFees: 40},
	}
	f := contracts.DefaultFilterState()
	f.Revenue = contracts.TierHigh

	// p75 over all four = 32.5, so a search for "Alpha" cannot pull A back in
	assert.Empty(t, newTestScreener().Select(records, f, "alpha"))
	assert.Equal(t, []string{"D"}, ids(newTestScreener().Select(records, f, "delta")))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	records := []contracts.Customer{
		{ClientID: "A", TotalFees: 1},
		{ClientID: "B", TotalFees: 2},
	}
	before := append([]contracts.Customer(nil), records...)

	out := newTestScreener().Select(records, contracts.DefaultFilterState(), "")
	require.Len(t, out, 2)
	out[0].ClientID = "CHANGED"

	assert.Equal(t, before, records)
}

func TestSelect_Empty(t *testing.T) {
	f := contracts.DefaultFilterState()
	f.Revenue = contracts.TierHigh
	f.Risk = contracts.TierLow

	out := newTestScreener().Select(nil, f, "x")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
