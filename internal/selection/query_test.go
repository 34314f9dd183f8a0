package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
)

func TestParseQuery_Defaults(t *testing.T) {
	p := newTestPipeline()

	q, err := p.ParseQuery(QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, p.DefaultQuery(), q)
}

func TestParseQuery_AllFields(t *testing.T) {
	q, err := newTestPipeline().ParseQuery(QueryParams{
		Gender:       "Female",
		Relationship: " 3 ",
		Advisor:      "all",
		Tenure:       "< 10 Years",
		Revenue:      "high",
		Risk:         "LOW",
		Search:       "  julia ",
		Sort:         "name",
		Direction:    "asc",
		Limit:        "all",
	})
	require.NoError(t, err)

	assert.Equal(t, contracts.FilterState{
		Gender:       "Female",
		Relationship: "3",
		Advisor:      contracts.All,
		Tenure:       contracts.TenureUnder10,
		Revenue:      contracts.TierHigh,
		Risk:         contracts.TierLow,
	}, q.Filters)
	assert.Equal(t, "julia", q.Search)
	assert.Equal(t, contracts.SortSpec{Field: contracts.SortName, Direction: contracts.Asc}, q.Sort)
	assert.Equal(t, 0, q.Limit)
}

func TestParseQuery_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params QueryParams
		field  string
	}{
		{"tenure", QueryParams{Tenure: "forever"}, "tenure"},
		{"revenue", QueryParams{Revenue: "mid"}, "revenue"},
		{"risk", QueryParams{Risk: "extreme"}, "risk"},
		{"sort", QueryParams{Sort: "age"}, "sort"},
		{"direction", QueryParams{Direction: "sideways"}, "dir"},
		{"limit", QueryParams{Limit: "-5"}, "limit"},
	}

	p := newTestPipeline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseQuery(tt.params)
			require.Error(t, err)

			var pe *contracts.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}
