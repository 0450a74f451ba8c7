package comps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// rangeFilter binds a FilterState range key to the metric it constrains.
type rangeFilter struct {
	key    string
	metric string
	field  func(fs *model.FilterState) **model.RangeFilter
}

// rangeFilters is the fixed table of range filter keys.
var rangeFilters = []rangeFilter{
	{"revenueGrowth", "revenueGrowth", func(fs *model.FilterState) **model.RangeFilter { return &fs.RevenueGrowth }},
	{"marketCap", "marketCap", func(fs *model.FilterState) **model.RangeFilter { return &fs.MarketCap }},
	{"evToRevenue", "evToNtmRevenue", func(fs *model.FilterState) **model.RangeFilter { return &fs.EvToRevenue }},
	{"ruleOf40", "ruleOf40", func(fs *model.FilterState) **model.RangeFilter { return &fs.RuleOf40 }},
	{"fcfMargin", "fcfMargin", func(fs *model.FilterState) **model.RangeFilter { return &fs.FcfMargin }},
	{"impliedArr", "impliedArr", func(fs *model.FilterState) **model.RangeFilter { return &fs.ImpliedArr }},
}

// RangeFilterKeys lists the range filter keys in display order.
func RangeFilterKeys() []string {
	keys := make([]string, len(rangeFilters))
	for i, rf := range rangeFilters {
		keys[i] = rf.key
	}
	return keys
}

// SetRange sets the range filter for key on fs. Unknown keys are a
// ValidationError.
func SetRange(fs *model.FilterState, key string, r *model.RangeFilter) error {
	for _, rf := range rangeFilters {
		if rf.key == key {
			*rf.field(fs) = r
			return nil
		}
	}
	return model.NewValidationError("filter", fmt.Sprintf("unknown range key %q (want one of %s)",
		key, strings.Join(RangeFilterKeys(), ", ")))
}

type predicate func(c *model.Company) bool

// predicates builds one predicate per active filter key.
func predicates(fs model.FilterState) []predicate {
	var preds []predicate

	if len(fs.Companies) > 0 {
		ids := fs.Companies
		preds = append(preds, func(c *model.Company) bool { return slices.Contains(ids, c.ID) })
	}
	if len(fs.Sectors) > 0 {
		sectors := fs.Sectors
		preds = append(preds, func(c *model.Company) bool { return slices.Contains(sectors, c.Sector) })
	}

	for _, rf := range rangeFilters {
		r := *rf.field(&fs)
		if !r.Active() {
			continue
		}
		def, ok := metric.Lookup(rf.metric)
		if !ok {
			panic("comps: range filter on unknown metric " + rf.metric)
		}
		preds = append(preds, func(c *model.Company) bool {
			v, ok := def.Value(c)
			if !ok {
				return false
			}
			return r.Contains(v)
		})
	}
	return preds
}

// Filter returns the companies passing every active filter, in input order.
// The input slice is not modified.
func Filter(companies []model.Company, fs model.FilterState) []model.Company {
	preds := predicates(fs)
	out := make([]model.Company, 0, len(companies))

next:
	for i := range companies {
		for _, p := range preds {
			if !p(&companies[i]) {
				continue next
			}
		}
		out = append(out, companies[i])
	}
	return out
}
