package comps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-engine/internal/model"
)

func TestEngine_FilterOptions(t *testing.T) {
	e := newTestEngine(t, sample())

	opts, err := e.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Sector{"Software", "Fintech", "Security"}, opts.Sectors)
	require.Len(t, opts.Companies, 4)
	assert.Equal(t, model.CompanyRef{ID: "adobe", Name: "Adobe"}, opts.Companies[0])

	require.Len(t, opts.Ranges, len(RangeFilterKeys()))
	require.NotNil(t, opts.Ranges["ruleOf40"])
	assert.Equal(t, Bounds{Min: 25, Max: 58}, *opts.Ranges["ruleOf40"])
	assert.Equal(t, Bounds{Min: 2903, Max: 160643}, *opts.Ranges["marketCap"])
	assert.Equal(t, Bounds{Min: 7.1, Max: 15}, *opts.Ranges["evToRevenue"])
}

func TestEngine_FilterOptionsEmptyRoster(t *testing.T) {
	e := newTestEngine(t, nil)

	opts, err := e.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opts.Sectors)
	assert.Empty(t, opts.Companies)
	assert.Nil(t, opts.Ranges["marketCap"])
}

func TestEngine_SectorsAndLists(t *testing.T) {
	e := newTestEngine(t, sample())
	ctx := context.Background()

	sectors, err := e.Sectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Sector{"Software", "Fintech", "Security"}, sectors)

	list, err := e.CompanyList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Empty(t, list[1].Sector)
	assert.Equal(t, "Alkami", list[1].Name)

	dir, err := e.CompanyDirectory(ctx)
	require.NoError(t, err)
	require.Len(t, dir, 4)
	assert.Equal(t, model.CompanyRef{ID: "alkami", Name: "Alkami", Sector: "Fintech"}, dir[1])
}

func TestEngine_Search(t *testing.T) {
	e := newTestEngine(t, sample())

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"adobe", "alkami", "datadog", "zscaler"}},
		{"ADO", []string{"adobe"}},
		{"  dog ", []string{"datadog"}},
		{"software", []string{"adobe", "datadog"}},
		{"fin", []string{"alkami"}},
		{"nothing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := e.Search(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
