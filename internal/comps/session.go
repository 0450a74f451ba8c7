package comps

import (
	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// DefaultSessionPageSize is the comparison table's initial page size.
const DefaultSessionPageSize = 30

// Session is the filter and table state of one dashboard session. It is owned
// by a single caller and is not safe for concurrent use.
type Session struct {
	Filters model.FilterState `json:"filters"`
	Table   model.TableConfig `json:"table"`
}

// NewSession returns a session sorted by name ascending on page 1.
func NewSession() *Session {
	return &Session{
		Table: model.TableConfig{
			SortColumn:     "name",
			SortDirection:  model.SortAsc,
			VisibleColumns: append([]string(nil), metric.DefaultVisibleColumns...),
			PageSize:       DefaultSessionPageSize,
			CurrentPage:    1,
		},
	}
}

// SetFilters replaces the filters and returns to the first page.
func (s *Session) SetFilters(fs model.FilterState) {
	s.Filters = fs
	s.Table.CurrentPage = 1
}

// ClearFilters removes every filter and returns to the first page.
func (s *Session) ClearFilters() {
	s.SetFilters(model.FilterState{})
}

// ToggleSort sorts by column, flipping to descending when the table is already
// sorted ascending on that column.
func (s *Session) ToggleSort(column string) {
	dir := model.SortAsc
	if s.Table.SortColumn == column && s.Table.SortDirection == model.SortAsc {
		dir = model.SortDesc
	}
	s.Table.SortColumn = column
	s.Table.SortDirection = dir
}

// SetPage moves to a 1-based page.
func (s *Session) SetPage(page int) error {
	if page < 1 {
		return model.NewValidationError("currentPage", "must be at least 1")
	}
	s.Table.CurrentPage = page
	return nil
}

// SetPageSize changes the page size and returns to the first page.
func (s *Session) SetPageSize(size int) error {
	if size < 1 {
		return model.NewValidationError("pageSize", "must be at least 1")
	}
	s.Table.PageSize = size
	s.Table.CurrentPage = 1
	return nil
}

// SetVisibleColumns sets the ordered column list, dropping unknown and
// repeated keys.
func (s *Session) SetVisibleColumns(keys []string) {
	seen := make(map[string]bool, len(keys))
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := metric.Lookup(k); !ok || seen[k] {
			continue
		}
		seen[k] = true
		cols = append(cols, k)
	}
	s.Table.VisibleColumns = cols
}

// Request builds the engine query for the session's current state.
func (s *Session) Request() Request {
	return Request{
		Filters:       s.Filters,
		SortColumn:    s.Table.SortColumn,
		SortDirection: s.Table.SortDirection,
		Page:          s.Table.CurrentPage,
		PageSize:      s.Table.PageSize,
	}
}
