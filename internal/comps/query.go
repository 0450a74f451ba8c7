// Package comps implements the comparison-table engine: filtering, sorting,
// aggregation and pagination over the immutable company roster.
package comps

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comps-engine/internal/model"
)

// Roster is the read-only company source the engine queries.
type Roster interface {
	All() []model.Company
	ByID(id string) (*model.Company, error)
}

// QueryConfig bounds pagination.
type QueryConfig struct {
	DefaultPageSize int `yaml:"default_page_size" mapstructure:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size" mapstructure:"max_page_size"`
}

// DefaultQueryConfig matches the dashboard's defaults.
var DefaultQueryConfig = QueryConfig{DefaultPageSize: 10, MaxPageSize: 100}

// Request is one comparison-table query.
type Request struct {
	Filters       model.FilterState   `json:"filters"`
	SortColumn    string              `json:"sortColumn,omitempty"`
	SortDirection model.SortDirection `json:"sortDirection,omitempty"`
	Page          int                 `json:"page,omitempty"`
	PageSize      int                 `json:"pageSize,omitempty"`
}

// Normalize fills in the default page and page size.
func (r *Request) Normalize(cfg QueryConfig) {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PageSize == 0 {
		r.PageSize = cfg.DefaultPageSize
	}
}

// Validate checks pagination and sort direction. Unknown sort columns and
// unknown filter values are not errors.
func (r *Request) Validate(cfg QueryConfig) error {
	if r.Page < 1 {
		return model.NewValidationError("page", "must be at least 1")
	}
	if r.PageSize < 1 || (cfg.MaxPageSize > 0 && r.PageSize > cfg.MaxPageSize) {
		return model.NewValidationError("pageSize", fmt.Sprintf("must be between 1 and %d", cfg.MaxPageSize))
	}
	if r.SortDirection != "" && !r.SortDirection.Valid() {
		return model.NewValidationError("sortDirection", fmt.Sprintf("must be %q or %q", model.SortAsc, model.SortDesc))
	}
	return nil
}

// Response is one page of the comparison table plus summary rows computed over
// every company that passed the filters.
type Response struct {
	Companies  []model.Company       `json:"companies"`
	Aggregates model.AggregateResult `json:"aggregates"`
	Pagination model.Pagination      `json:"pagination"`
}

// Overview is the full roster with its summary rows.
type Overview struct {
	Companies  []model.Company       `json:"companies"`
	Aggregates model.AggregateResult `json:"aggregates"`
}

// Engine answers comparison-table queries. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	roster Roster
	cfg    QueryConfig
}

// NewEngine creates an Engine over roster.
func NewEngine(roster Roster, cfg QueryConfig) *Engine {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = DefaultQueryConfig.DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultQueryConfig.MaxPageSize
	}
	return &Engine{roster: roster, cfg: cfg}
}

// Config returns the engine's pagination bounds.
func (e *Engine) Config() QueryConfig {
	return e.cfg
}

// Query runs filter, sort, aggregate and paginate in that order. Aggregates
// cover the whole filtered set, not just the returned page.
func (e *Engine) Query(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: query")
	}
	req.Normalize(e.cfg)
	if err := req.Validate(e.cfg); err != nil {
		return nil, err
	}

	rows := e.rows(req)
	page, pagination := Paginate(rows.Companies, req.Page, req.PageSize)

	return &Response{
		Companies:  page,
		Aggregates: rows.Aggregates,
		Pagination: pagination,
	}, nil
}

// Rows returns every company passing req's filters in req's sort order, with
// aggregates. Pagination fields are ignored.
func (e *Engine) Rows(ctx context.Context, req Request) (*Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: rows")
	}
	if req.SortDirection != "" && !req.SortDirection.Valid() {
		return nil, model.NewValidationError("sortDirection", fmt.Sprintf("must be %q or %q", model.SortAsc, model.SortDesc))
	}
	return e.rows(req), nil
}

func (e *Engine) rows(req Request) *Overview {
	filtered := Filter(e.roster.All(), req.Filters)

	// Sorting needs both a column and a direction; either alone keeps roster order.
	if req.SortColumn != "" && req.SortDirection != "" {
		if !Sortable(req.SortColumn) {
			zap.L().Debug("comps: ignoring unknown sort column", zap.String("column", req.SortColumn))
		}
		filtered = Sort(filtered, req.SortColumn, req.SortDirection)
	}

	return &Overview{Companies: filtered, Aggregates: Aggregate(filtered)}
}

// All returns every company with aggregates over the full roster.
func (e *Engine) All(ctx context.Context) (*Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: all")
	}
	companies := e.roster.All()
	return &Overview{Companies: companies, Aggregates: Aggregate(companies)}, nil
}

// Company returns one company by id.
func (e *Engine) Company(ctx context.Context, id string) (*model.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "comps: company")
	}
	return e.roster.ByID(id)
}
