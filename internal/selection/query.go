package selection

import (
	"strings"

	"github.com/wonny/c360/internal/contracts"
)

// QueryParams is the raw, string form of a Query as it arrives from an
// HTTP query string or CLI flags. Empty fields keep the pipeline defaults.
type QueryParams struct {
	Gender       string
	Relationship string
	Advisor      string
	Tenure       string
	Revenue      string
	Risk         string
	Search       string
	Sort         string
	Direction    string
	Limit        string
}

// ParseQuery validates params on top of DefaultQuery.
// The first invalid field is returned as a *contracts.ParseError.
func (p *Pipeline) ParseQuery(params QueryParams) (Query, error) {
	q := p.DefaultQuery()

	q.Filters.Gender = selector(params.Gender)
	q.Filters.Relationship = selector(params.Relationship)
	q.Filters.Advisor = selector(params.Advisor)
	q.Search = strings.TrimSpace(params.Search)

	var err error
	if q.Filters.Tenure, err = contracts.ParseTenureBucket(params.Tenure); err != nil {
		return Query{}, err
	}
	if q.Filters.Revenue, err = contracts.ParseTier("revenue", params.Revenue); err != nil {
		return Query{}, err
	}
	if q.Filters.Risk, err = contracts.ParseTier("risk", params.Risk); err != nil {
		return Query{}, err
	}

	if strings.TrimSpace(params.Sort) != "" {
		if q.Sort.Field, err = contracts.ParseSortField(params.Sort); err != nil {
			return Query{}, err
		}
	}
	if strings.TrimSpace(params.Direction) != "" {
		if q.Sort.Direction, err = contracts.ParseSortDirection(params.Direction); err != nil {
			return Query{}, err
		}
	}

	if q.Limit, err = ParseLimit(params.Limit, q.Limit); err != nil {
		return Query{}, err
	}

	return q, nil
}

// selector maps an empty categorical value to All
func selector(v string) string {
	v = strings.TrimSpace(v)
	if contracts.IsAll(v) || strings.EqualFold(v, contracts.All) {
		return contracts.All
	}
	return v
}
