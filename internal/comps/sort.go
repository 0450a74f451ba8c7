package comps

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// Sortable reports whether column names a sortable metric.
func Sortable(column string) bool {
	_, ok := metric.Lookup(column)
	return ok
}

// Sort returns a copy of companies ordered by column. Text columns use
// locale-aware collation and numeric columns compare by value. Nulls sort last
// in both directions and ties keep their input order.
//
// An unknown column returns the input order unchanged rather than an error.
func Sort(companies []model.Company, column string, dir model.SortDirection) []model.Company {
	out := slices.Clone(companies)

	def, ok := metric.Lookup(column)
	if !ok {
		return out
	}

	sign := 1
	if dir == model.SortDesc {
		sign = -1
	}

	if def.IsText() {
		// Collators carry scratch buffers and must not be shared across goroutines.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Company) int {
			return sign * col.CompareString(def.Text(&a), def.Text(&b))
		})
		return out
	}

	slices.SortStableFunc(out, func(a, b model.Company) int {
		av, aok := def.Value(&a)
		bv, bok := def.Value(&b)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		return sign * cmp.Compare(av, bv)
	})
	return out
}
