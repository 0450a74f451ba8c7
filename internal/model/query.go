package model

import "encoding/json"

// RangeFilter is an inclusive numeric range. A nil bound is unbounded on that side.
type RangeFilter struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Active reports whether at least one bound is set.
func (r *RangeFilter) Active() bool {
	return r != nil && (r.Min != nil || r.Max != nil)
}

// Contains reports whether v lies within the range, bounds inclusive.
func (r *RangeFilter) Contains(v float64) bool {
	if r == nil {
		return true
	}
	return (r.Min == nil || v >= *r.Min) && (r.Max == nil || v <= *r.Max)
}

// FilterState is the set of inclusion criteria for the comparison table. An
// empty selection or a nil range means no restriction on that key.
type FilterState struct {
	Companies     []string     `json:"companies,omitempty"`
	Sectors       []Sector     `json:"sectors,omitempty"`
	RevenueGrowth *RangeFilter `json:"revenueGrowth,omitempty"`
	MarketCap     *RangeFilter `json:"marketCap,omitempty"`
	EvToRevenue   *RangeFilter `json:"evToRevenue,omitempty"`
	RuleOf40      *RangeFilter `json:"ruleOf40,omitempty"`
	FcfMargin     *RangeFilter `json:"fcfMargin,omitempty"`
	ImpliedArr    *RangeFilter `json:"impliedArr,omitempty"`
}

// SortDirection orders a column ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is one of the known directions.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// TableConfig is the comparison table's per-session view state.
type TableConfig struct {
	SortColumn     string        `json:"sortColumn"`
	SortDirection  SortDirection `json:"sortDirection"`
	VisibleColumns []string      `json:"visibleColumns"`
	PageSize       int           `json:"pageSize"`
	CurrentPage    int           `json:"currentPage"` // 1-based
}

// Pagination describes the page returned from a query.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PageSize    int `json:"pageSize"`
}

// AggregateResult holds summary values per metric key. A nil value means the
// metric had no data in the aggregated set.
type AggregateResult struct {
	Count  int                 `json:"count"`
	Mean   map[string]*float64 `json:"mean"`
	Median map[string]*float64 `json:"median"`
}

// QuarterPoint is one quarter of a profile chart series.
type QuarterPoint struct {
	Quarter    string  `json:"quarter"`
	ImpliedArr float64 `json:"impliedArr"`
	NetNewArr  float64 `json:"netNewArr"`
	YoyGrowth  float64 `json:"yoyGrowth"`
}

// ChartPoint is one quarter of a secondary profile chart. It marshals flat,
// as {"quarter": ..., "<name>": <value>, ...}.
type ChartPoint struct {
	Quarter string
	Values  map[string]float64
}

// MarshalJSON implements json.Marshaler.
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Values)+1)
	for k, v := range p.Values {
		m[k] = v
	}
	m["quarter"] = p.Quarter
	return json.Marshal(m)
}
