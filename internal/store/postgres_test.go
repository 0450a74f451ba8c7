package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comps-engine/internal/model"
)

// newMockPostgresSource creates a PostgresSource backed by pgxmock for unit testing.
func newMockPostgresSource(t *testing.T) (*PostgresSource, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

var rowColumns = []string{"id", "name", "sector", "financial_metrics", "trading_data", "operating_metrics", "valuation_metrics"}

func TestPostgresSource_Load(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectQuery(`SELECT id, name, sector, financial_metrics, trading_data, operating_metrics, valuation_metrics\s+FROM companies ORDER BY position`).
		WillReturnRows(pgxmock.NewRows(rowColumns).
			AddRow("adobe", "Adobe", "Software",
				[]byte(`{"marketCap":160643,"impliedArr":22745}`),
				[]byte(`{"price":376.92}`),
				[]byte(`{"ruleOf40":35,"netDollarRetention":110}`),
				[]byte(`{"evToNtmRevenue":7.1,"evToNtmFcf":null}`)).
			AddRow("alkami", "Alkami", "Fintech",
				[]byte(`{"marketCap":2903}`),
				[]byte(`{"price":27.95}`),
				[]byte(`{"ruleOf40":42}`),
				[]byte(`{"evToNtmRevenue":8.2}`)))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "adobe", got[0].ID)
	assert.Equal(t, model.Sector("Software"), got[0].Sector)
	assert.Equal(t, 160643.0, got[0].FinancialMetrics.MarketCap)
	require.NotNil(t, got[0].OperatingMetrics.NetDollarRetention)
	assert.Equal(t, 110.0, *got[0].OperatingMetrics.NetDollarRetention)
	assert.Nil(t, got[0].ValuationMetrics.EvToNtmFcf)
	assert.Equal(t, 42.0, got[1].OperatingMetrics.RuleOf40)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_QueryError(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectQuery(`FROM companies`).WillReturnError(errors.New("connection refused"))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: query companies")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_MissingGroup(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectQuery(`FROM companies`).
		WillReturnRows(pgxmock.NewRows(rowColumns).
			AddRow("adobe", "Adobe", "Software", []byte(`{}`), []byte(nil), []byte(`{}`), []byte(`{}`)))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing trading_data")
}

func TestPostgresSource_Migrate(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS companies`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Seed(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM companies`).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCopyFrom(pgx.Identifier{"companies"}, companyColumns).WillReturnResult(3)
	mock.ExpectCommit()

	n, err := s.Seed(context.Background(), threeCompanies())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Seed_Empty(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM companies`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()

	n, err := s.Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Seed_CopyErrorRollsBack(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM companies`).WillReturnResult(pgxmock.NewResult("DELETE", 26))
	mock.ExpectCopyFrom(pgx.Identifier{"companies"}, companyColumns).WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := s.Seed(context.Background(), threeCompanies())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: copy companies")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Seed_DeleteErrorRollsBack(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM companies`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	_, err := s.Seed(context.Background(), threeCompanies())
	assert.ErrorContains(t, err, "postgres: clear companies")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Seed_BeginError(t *testing.T) {
	s, mock := newMockPostgresSource(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := s.Seed(context.Background(), threeCompanies())
	assert.ErrorContains(t, err, "postgres: begin seed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
