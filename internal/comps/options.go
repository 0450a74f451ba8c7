package comps

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"

	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// Bounds is the observed [min, max] of a metric across the roster.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterOptions is everything a filter bar needs to render its controls.
type FilterOptions struct {
	Sectors   []model.Sector     `json:"sectors"`
	Companies []model.CompanyRef `json:"companies"`
	Ranges    map[string]*Bounds `json:"ranges"`
}

// FilterOptions computes selector values and range bounds from the roster.
// A range key with no data maps to nil.
func (e *Engine) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: filter options")
	}
	companies := e.roster.All()

	opts := &FilterOptions{
		Sectors:   sectors(companies),
		Companies: refs(companies, false),
		Ranges:    make(map[string]*Bounds, len(rangeFilters)),
	}
	for _, rf := range rangeFilters {
		def, _ := metric.Lookup(rf.metric)
		opts.Ranges[rf.key] = bounds(companies, def)
	}
	return opts, nil
}

func bounds(companies []model.Company, def metric.Definition) *Bounds {
	var b *Bounds
	for i := range companies {
		v, ok := def.Value(&companies[i])
		if !ok {
			continue
		}
		if b == nil {
			b = &Bounds{Min: v, Max: v}
			continue
		}
		b.Min = min(b.Min, v)
		b.Max = max(b.Max, v)
	}
	return b
}

// Sectors returns the distinct sectors in roster order.
func (e *Engine) Sectors(ctx context.Context) ([]model.Sector, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: sectors")
	}
	return sectors(e.roster.All()), nil
}

func sectors(companies []model.Company) []model.Sector {
	seen := make(map[model.Sector]bool)
	out := []model.Sector{}
	for _, c := range companies {
		if seen[c.Sector] {
			continue
		}
		seen[c.Sector] = true
		out = append(out, c.Sector)
	}
	return out
}

// CompanyList returns the id/name pairs for company selectors.
func (e *Engine) CompanyList(ctx context.Context) ([]model.CompanyRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: company list")
	}
	return refs(e.roster.All(), false), nil
}

// CompanyDirectory returns id, name and sector for profile navigation.
func (e *Engine) CompanyDirectory(ctx context.Context) ([]model.CompanyRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: company directory")
	}
	return refs(e.roster.All(), true), nil
}

func refs(companies []model.Company, withSector bool) []model.CompanyRef {
	out := make([]model.CompanyRef, len(companies))
	for i := range companies {
		out[i] = companies[i].Ref()
		if withSector {
			out[i].Sector = companies[i].Sector
		}
	}
	return out
}

// Search returns companies whose name or sector contains query, ignoring case.
// An empty query matches everything.
func (e *Engine) Search(ctx context.Context, query string) ([]model.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: search")
	}
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	out := []model.Company{}
	for _, c := range e.roster.All() {
		if strings.Contains(fold.String(c.Name), q) || strings.Contains(fold.String(string(c.Sector)), q) {
			out = append(out, c)
		}
	}
	return out, nil
}
