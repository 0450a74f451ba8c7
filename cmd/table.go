package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/comps-engine/internal/comps"
	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// tableFlags are the filter and sort flags shared by list and export.
type tableFlags struct {
	companies []string
	sectors   []string
	ranges    []string
	sort      string
	dir       string
	page      int
	pageSize  int
	columns   []string
}

func (f *tableFlags) register(cmd *cobra.Command, paged bool) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.companies, "company", nil, "restrict to company ids (repeatable)")
	fl.StringSliceVar(&f.sectors, "sector", nil, "restrict to sectors (repeatable)")
	fl.StringArrayVar(&f.ranges, "range", nil, "range filter key=min:max, either bound optional (e.g. ruleOf40=40:)")
	fl.StringVar(&f.sort, "sort", "name", "sort column (metric key)")
	fl.StringVar(&f.dir, "dir", string(model.SortAsc), "sort direction (asc, desc)")
	fl.StringSliceVar(&f.columns, "columns", metric.DefaultVisibleColumns, "columns to show (metric keys)")
	if paged {
		fl.IntVar(&f.page, "page", 1, "page number (1-based)")
		fl.IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	}
}

// session builds the table state the flags describe. Unknown columns are
// rejected; repeated ones are dropped.
func (f *tableFlags) session() (*comps.Session, error) {
	var fs model.FilterState
	fs.Companies = f.companies
	for _, s := range f.sectors {
		fs.Sectors = append(fs.Sectors, model.Sector(s))
	}
	for _, raw := range f.ranges {
		key, r, err := parseRange(raw)
		if err != nil {
			return nil, err
		}
		if err := comps.SetRange(&fs, key, r); err != nil {
			return nil, err
		}
	}
	if _, err := resolveColumns(f.columns); err != nil {
		return nil, err
	}

	s := comps.NewSession()
	s.SetFilters(fs)
	s.SetVisibleColumns(f.columns)
	s.Table.SortColumn = f.sort
	s.Table.SortDirection = model.SortDirection(f.dir)
	// Zero leaves the page size to the engine's configured default.
	s.Table.PageSize = 0
	if f.pageSize != 0 {
		if err := s.SetPageSize(f.pageSize); err != nil {
			return nil, err
		}
	}
	if f.page != 0 {
		if err := s.SetPage(f.page); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// parseRange parses "key=min:max" where either bound may be empty.
func parseRange(raw string) (string, *model.RangeFilter, error) {
	key, bounds, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return "", nil, model.NewValidationError("range", fmt.Sprintf("%q is not key=min:max", raw))
	}
	lo, hi, ok := strings.Cut(bounds, ":")
	if !ok {
		return "", nil, model.NewValidationError("range", fmt.Sprintf("%q is missing ':' between min and max", raw))
	}

	r := &model.RangeFilter{}
	var err error
	if r.Min, err = parseBound(lo); err != nil {
		return "", nil, model.NewValidationError("range", fmt.Sprintf("%q: bad min: %v", raw, err))
	}
	if r.Max, err = parseBound(hi); err != nil {
		return "", nil, model.NewValidationError("range", fmt.Sprintf("%q: bad max: %v", raw, err))
	}
	return key, r, nil
}

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// resolveColumns maps column keys to definitions, rejecting unknown keys.
func resolveColumns(keys []string) ([]metric.Definition, error) {
	defs := make([]metric.Definition, 0, len(keys))
	for _, k := range keys {
		d, ok := metric.Lookup(k)
		if !ok {
			return nil, eris.Errorf("unknown column %q", k)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// cell renders one table cell.
func cell(d metric.Definition, c *model.Company) string {
	if d.IsText() {
		return d.Text(c)
	}
	v, ok := d.Value(c)
	if !ok {
		return metric.Missing
	}
	return d.Display(v)
}

func summaryCell(d metric.Definition, values map[string]*float64) string {
	if d.IsText() {
		return ""
	}
	v := values[d.Key]
	if v == nil {
		return metric.Missing
	}
	return d.Display(*v)
}

// formatCompanyTable writes companies under a header of column labels,
// followed by Mean and Median rows. The row labels go in the first column
// when it is text; otherwise a leading label column is added.
func formatCompanyTable(out io.Writer, companies []model.Company, agg model.AggregateResult, defs []metric.Definition) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	labelCol := len(defs) == 0 || !defs[0].IsText()
	var lead []string
	if labelCol {
		lead = []string{""}
	}

	cells := append([]string(nil), lead...)
	for _, d := range defs {
		cells = append(cells, strings.ToUpper(d.Label))
	}
	_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))

	for i := range companies {
		cells = append(cells[:0], lead...)
		for _, d := range defs {
			cells = append(cells, cell(d, &companies[i]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	for _, row := range []struct {
		label  string
		values map[string]*float64
	}{{"Mean", agg.Mean}, {"Median", agg.Median}} {
		cells = cells[:0]
		for _, d := range defs {
			cells = append(cells, summaryCell(d, row.values))
		}
		if labelCol {
			cells = append([]string{row.label}, cells...)
		} else {
			cells[0] = row.label
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	_ = w.Flush()
}
