package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-engine/internal/model"
)

// Source loads the company roster from some backing medium. Sources are read
// once at startup; the resulting Snapshot never changes.
type Source interface {
	Load(ctx context.Context) ([]model.Company, error)
}

// Snapshot is the immutable in-memory roster of index companies. It is safe
// for concurrent use because nothing mutates it after construction.
type Snapshot struct {
	companies []model.Company
	byID      map[string]int
	ids       []string
}

// NewSnapshot validates companies and builds a Snapshot preserving their order.
func NewSnapshot(companies []model.Company) (*Snapshot, error) {
	s := &Snapshot{
		companies: make([]model.Company, len(companies)),
		byID:      make(map[string]int, len(companies)),
		ids:       make([]string, 0, len(companies)),
	}
	copy(s.companies, companies)

	for i, c := range s.companies {
		if c.ID == "" {
			return nil, eris.Errorf("store: company at position %d has no id", i)
		}
		if c.Name == "" {
			return nil, eris.Errorf("store: company %q has no name", c.ID)
		}
		if _, dup := s.byID[c.ID]; dup {
			return nil, eris.Errorf("store: duplicate company id %q", c.ID)
		}
		s.byID[c.ID] = i
		s.ids = append(s.ids, c.ID)
	}
	return s, nil
}

// Load reads companies from src and builds a Snapshot.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	companies, err := src.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "store: load")
	}
	return NewSnapshot(companies)
}

// All returns the companies in insertion order. The slice is a copy; callers
// may reorder it freely.
func (s *Snapshot) All() []model.Company {
	out := make([]model.Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// ByID returns the company with the given id, or a *model.NotFoundError
// listing every valid id.
func (s *Snapshot) ByID(id string) (*model.Company, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, model.NewNotFoundError(id, s.IDs())
	}
	c := s.companies[i]
	return &c, nil
}

// IDs returns every company id in insertion order.
func (s *Snapshot) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of companies.
func (s *Snapshot) Len() int {
	return len(s.companies)
}
