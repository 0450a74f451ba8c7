package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/comps-engine/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresSource. pgxmock pools
// satisfy it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresSource reads the snapshot from Postgres via pgxpool.
type PostgresSource struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`

	// Connect governs retries of the startup ping. Zero fields use
	// DefaultRetryPolicy.
	Connect RetryPolicy `yaml:"connect" mapstructure:"connect"`
}

// NewPostgres creates a PostgresSource with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresSource, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// The snapshot is read once at startup; a small pool is plenty.
	maxConns := int32(4)
	minConns := int32(1)
	var connect RetryPolicy
	if poolCfg != nil {
		connect = poolCfg.Connect
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := retry(ctx, connect, "postgres ping", pool.Ping); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresSource{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool.
func NewPostgresWithPool(pool Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	sector            TEXT NOT NULL,
	position          INTEGER NOT NULL,
	financial_metrics JSONB NOT NULL,
	trading_data      JSONB NOT NULL,
	operating_metrics JSONB NOT NULL,
	valuation_metrics JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_position ON companies(position);
`

// Migrate creates the companies table if it does not exist.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Close releases the pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

// Load reads every company ordered by position.
func (s *PostgresSource) Load(ctx context.Context) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, sector, financial_metrics, trading_data, operating_metrics, valuation_metrics
		FROM companies ORDER BY position, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query companies")
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		var r companyRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Sector, &r.Financial, &r.Trading, &r.Operating, &r.Valuation); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		c, err := r.decode()
		if err != nil {
			return nil, eris.Wrap(err, "postgres")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate companies")
}

var companyColumns = []string{
	"id", "name", "sector", "position",
	"financial_metrics", "trading_data", "operating_metrics", "valuation_metrics",
}

// Seed replaces the table contents with companies using the COPY protocol.
// The delete and the copy share one transaction, so a failed copy leaves the
// previous rows in place.
func (s *PostgresSource) Seed(ctx context.Context, companies []model.Company) (int64, error) {
	rows := make([][]any, 0, len(companies))
	for i, c := range companies {
		r, err := encodeRow(c)
		if err != nil {
			return 0, eris.Wrap(err, "postgres")
		}
		rows = append(rows, []any{r.ID, r.Name, r.Sector, i, r.Financial, r.Trading, r.Operating, r.Valuation})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin seed")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM companies`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear companies")
	}
	var n int64
	if len(rows) > 0 {
		n, err = tx.CopyFrom(ctx, pgx.Identifier{"companies"}, companyColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return 0, eris.Wrap(err, "postgres: copy companies")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit seed")
	}
	return n, nil
}
