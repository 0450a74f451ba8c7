package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/comps-engine/internal/model"
)

// SQLiteSource reads the snapshot from a SQLite database using modernc.org/sqlite.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteSource{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	sector            TEXT NOT NULL,
	position          INTEGER NOT NULL,
	financial_metrics TEXT NOT NULL,
	trading_data      TEXT NOT NULL,
	operating_metrics TEXT NOT NULL,
	valuation_metrics TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_position ON companies(position);
`

// Migrate creates the companies table if it does not exist.
func (s *SQLiteSource) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Load reads every company ordered by position.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sector, financial_metrics, trading_data, operating_metrics, valuation_metrics
		FROM companies ORDER BY position, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query companies")
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		var r companyRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Sector, &r.Financial, &r.Trading, &r.Operating, &r.Valuation); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		c, err := r.decode()
		if err != nil {
			return nil, eris.Wrap(err, "sqlite")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate companies")
}

// Seed replaces the table contents with companies in a single transaction and
// returns the number of rows written.
func (s *SQLiteSource) Seed(ctx context.Context, companies []model.Company) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin seed")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear companies")
	}
	for i, c := range companies {
		r, err := encodeRow(c)
		if err != nil {
			return 0, eris.Wrap(err, "sqlite")
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO companies (id, name, sector, position, financial_metrics, trading_data, operating_metrics, valuation_metrics)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Sector, i, string(r.Financial), string(r.Trading), string(r.Operating), string(r.Valuation))
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert company %s", c.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit seed")
	}
	return int64(len(companies)), nil
}
