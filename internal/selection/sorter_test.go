package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/kpi"
)

func enrichedNamed(names ...string) []contracts.EnrichedCustomer {
	out := make([]contracts.EnrichedCustomer, len(names))
	for i, n := range names {
		out[i] = kpi.Enrich(contracts.Customer{ClientID: n, Name: n})
	}
	return out
}

func names(items []contracts.EnrichedCustomer) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Name
	}
	return out
}

func TestSorter_NameCollation(t *testing.T) {
	s := NewSorter("en")
	items := enrichedNamed("Bob", "alice", "Carol")

	desc := s.Sort(items, contracts.SortSpec{Field: contracts.SortName, Direction: contracts.Desc})
	assert.Equal(t, []string{"Carol", "Bob", "alice"}, names(desc))

	asc := s.Sort(items, contracts.SortSpec{Field: contracts.SortName, Direction: contracts.Asc})
	assert.Equal(t, []string{"alice", "Bob", "Carol"}, names(asc))

	// input untouched
	assert.Equal(t, []string{"Bob", "alice", "Carol"}, names(items))
}

func TestSorter_AccentsFollowLocale(t *testing.T) {
	s := NewSorter("en")
	items := enrichedNamed("Zoe", "Émile", "Eve")

	asc := s.Sort(items, contracts.SortSpec{Field: contracts.SortName, Direction: contracts.Asc})
	assert.Equal(t, []string{"Émile", "Eve", "Zoe"}, names(asc))
}

func TestSorter_InvalidTagFallsBack(t *testing.T) {
	s := NewSorter("!!")
	asc := s.Sort(enrichedNamed("b", "A"), contracts.SortSpec{Field: contracts.SortName, Direction: contracts.Asc})
	assert.Equal(t, []string{"A", "b"}, names(asc))
}

func TestSorter_Numeric(t *testing.T) {
	items := kpi.EnrichAll([]contracts.Customer{
		{ClientID: "A", TotalFees: 300, RiskWeighting: 10, TotalLoan: 100},
		{ClientID: "B", TotalFees: 100, RiskWeighting: 90, TotalLoan: 1000000},
		{ClientID: "C", TotalFees: 200, RiskWeighting: 50},
	})
	s := NewSorter("en")

	tests := []struct {
		spec contracts.SortSpec
		want []string
	}{
		{contracts.SortSpec{Field: contracts.SortRevenue, Direction: contracts.Desc}, []string{"A", "C", "B"}},
		{contracts.SortSpec{Field: contracts.SortRevenue, Direction: contracts.Asc}, []string{"B", "C", "A"}},
		{contracts.SortSpec{Field: contracts.SortRisk, Direction: contracts.Desc}, []string{"B", "C", "A"}},
		{contracts.SortSpec{Field: contracts.SortCLV, Direction: contracts.Desc}, []string{"B", "A", "C"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.spec.Field)+"_"+string(tt.spec.Direction), func(t *testing.T) {
			got := s.Sort(items, tt.spec)
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ClientID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSorter_StableTies(t *testing.T) {
	items := kpi.EnrichAll([]contracts.Customer{
		{ClientID: "1", TotalFees: 5},
		{ClientID: "2", TotalFees: 5},
		{ClientID: "3", TotalFees: 5},
	})
	s := NewSorter("en")

	for _, dir := range []contracts.SortDirection{contracts.Asc, contracts.Desc} {
		got := s.Sort(items, contracts.SortSpec{Field: contracts.SortRevenue, Direction: dir})
		assert.Equal(t, "1", got[0].ClientID)
		assert.Equal(t, "3", got[2].ClientID)
	}
}

func TestLimit(t *testing.T) {
	items := enrichedNamed("a", "b", "c")

	assert.Len(t, Limit(items, 2), 2)
	assert.Len(t, Limit(items, 0), 3)
	assert.Len(t, Limit(items, -1), 3)
	assert.Len(t, Limit(items, 10), 3)
	assert.Empty(t, Limit(nil, 5))
}
