// Package profile projects a single company snapshot into the views of its
// profile page: the quarterly chart series and the sectioned metrics table.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-engine/internal/model"
)

// Lookup resolves a company id.
type Lookup interface {
	ByID(id string) (*model.Company, error)
}

// Metrics is the full sectioned metrics table for one company.
type Metrics struct {
	Company  model.CompanyRef `json:"company"`
	Sections []Section        `json:"sections"`
}

// Projector builds profile views from the roster. It is safe for concurrent use.
type Projector struct {
	companies Lookup
	series    SeriesSource
	charts    ChartSource
}

// NewProjector creates a Projector. A nil series source uses SyntheticSeries.
// Secondary charts come from series when it is also a ChartSource and from
// SyntheticSeries otherwise.
func NewProjector(companies Lookup, series SeriesSource) *Projector {
	if series == nil {
		series = SyntheticSeries{}
	}
	charts, ok := series.(ChartSource)
	if !ok {
		charts = SyntheticSeries{}
	}
	return &Projector{companies: companies, series: series, charts: charts}
}

func (p *Projector) company(ctx context.Context, id string, op string) (*model.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "profile: "+op)
	}
	return p.companies.ByID(id)
}

// QuarterlySeries returns the twelve-quarter chart series for id, oldest first.
func (p *Projector) QuarterlySeries(ctx context.Context, id string) ([]model.QuarterPoint, error) {
	c, err := p.company(ctx, id, "quarterly series")
	if err != nil {
		return nil, err
	}
	return p.series.QuarterlySeries(c), nil
}

// ChartSeries returns the twelve-quarter series of one secondary chart for id,
// oldest first.
func (p *Projector) ChartSeries(ctx context.Context, id string, chart Chart) ([]model.ChartPoint, error) {
	if _, ok := chartFields[chart]; !ok {
		names := make([]string, len(Charts))
		for i, c := range Charts {
			names[i] = string(c)
		}
		return nil, model.NewValidationError("chart",
			fmt.Sprintf("%q is not one of %s", chart, strings.Join(names, ", ")))
	}
	c, err := p.company(ctx, id, "chart series")
	if err != nil {
		return nil, err
	}
	return p.charts.ChartSeries(chart, c), nil
}

// TableMetrics returns every profile section for id.
func (p *Projector) TableMetrics(ctx context.Context, id string) (*Metrics, error) {
	c, err := p.company(ctx, id, "table metrics")
	if err != nil {
		return nil, err
	}
	ref := c.Ref()
	ref.Sector = c.Sector
	m := &Metrics{Company: ref, Sections: make([]Section, len(Categories))}
	for i, cat := range Categories {
		m.Sections[i] = buildSection(cat, c)
	}
	return m, nil
}

// MetricsByCategory returns one profile section for id.
func (p *Projector) MetricsByCategory(ctx context.Context, id string, category Category) (*Section, error) {
	if _, ok := sectionRows[category]; !ok {
		names := make([]string, len(Categories))
		for i, c := range Categories {
			names[i] = string(c)
		}
		return nil, model.NewValidationError("category",
			fmt.Sprintf("%q is not one of %s", category, strings.Join(names, ", ")))
	}
	c, err := p.company(ctx, id, "metrics by category")
	if err != nil {
		return nil, err
	}
	s := buildSection(category, c)
	return &s, nil
}

// Details returns the stored snapshot for id.
func (p *Projector) Details(ctx context.Context, id string) (*model.Company, error) {
	return p.company(ctx, id, "details")
}
