package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-engine/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteSource {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "comps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteSource_SeedAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	companies := []model.Company{
		{
			ID: "zeta", Name: "Zeta", Sector: "Fintech",
			FinancialMetrics: model.FinancialMetrics{MarketCap: 2903},
			OperatingMetrics: model.OperatingMetrics{RuleOf40: 42, MagicNumber: model.Float(2.7)},
		},
		{
			ID: "alpha", Name: "Alpha", Sector: "Software",
			ValuationMetrics: model.ValuationMetrics{EvToNtmRevenue: 7.1},
		},
	}
	n, err := s.Seed(ctx, companies)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Seed order is kept, not id order.
	assert.Equal(t, "zeta", got[0].ID)
	assert.Equal(t, "alpha", got[1].ID)
	assert.Equal(t, 2903.0, got[0].FinancialMetrics.MarketCap)
	require.NotNil(t, got[0].OperatingMetrics.MagicNumber)
	assert.Equal(t, 2.7, *got[0].OperatingMetrics.MagicNumber)
	assert.Nil(t, got[1].OperatingMetrics.MagicNumber)
	assert.Equal(t, 7.1, got[1].ValuationMetrics.EvToNtmRevenue)
}

func TestSQLiteSource_SeedReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	_, err := s.Seed(ctx, threeCompanies())
	require.NoError(t, err)
	_, err = s.Seed(ctx, threeCompanies()[:1])
	require.NoError(t, err)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].ID)
}

func TestSQLiteSource_FixtureRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	fixture, err := FixtureSource{}.Load(ctx)
	require.NoError(t, err)
	_, err = s.Seed(ctx, fixture)
	require.NoError(t, err)

	snap, err := Load(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, len(fixture), snap.Len())

	adobe, err := snap.ByID("adobe")
	require.NoError(t, err)
	assert.Equal(t, fixture[0], *adobe)
}

func TestSQLiteSource_EmptyTable(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteSource_CorruptGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, sector, position, financial_metrics, trading_data, operating_metrics, valuation_metrics)
		VALUES ('bad', 'Bad', 'Software', 0, 'not json', '{}', '{}', '{}')`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode financial_metrics")
}
