package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/comps-engine/internal/config"
	"github.com/sells-group/comps-engine/internal/model"
	"github.com/sells-group/comps-engine/internal/store"
)

// defaultSQLitePath is used when the sqlite driver has no path configured.
const defaultSQLitePath = "comps.db"

// sqlSource is a database-backed snapshot source that can also be seeded.
type sqlSource interface {
	store.Source
	Migrate(ctx context.Context) error
	Seed(ctx context.Context, companies []model.Company) (int64, error)
	Close() error
}

// openSQL opens the configured database source and applies its schema.
func openSQL(ctx context.Context, sc config.StoreConfig) (sqlSource, error) {
	var (
		src sqlSource
		err error
	)
	switch sc.Driver {
	case config.DriverSQLite:
		dsn := sc.Path
		if dsn == "" {
			dsn = sc.DatabaseURL
		}
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		src, err = store.NewSQLite(dsn)
	case config.DriverPostgres:
		src, err = store.NewPostgres(ctx, sc.DatabaseURL, &store.PoolConfig{
			MaxConns: sc.MaxConns,
			Connect:  store.RetryPolicy{Attempts: sc.ConnectAttempts},
		})
	default:
		return nil, eris.Errorf("store driver %q is not a database", sc.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := src.Migrate(ctx); err != nil {
		_ = src.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return src, nil
}

// initStore loads the company snapshot from the configured source.
func initStore(ctx context.Context) (*store.Snapshot, error) {
	sc := cfg.Store

	var src store.Source
	switch sc.Driver {
	case config.DriverFixture, "":
		src = store.FixtureSource{}
	case config.DriverYAML:
		src = store.YAMLSource{Path: sc.Path}
	case config.DriverSQLite, config.DriverPostgres:
		db, err := openSQL(ctx, sc)
		if err != nil {
			return nil, err
		}
		defer db.Close() //nolint:errcheck
		src = db
	default:
		return nil, eris.Errorf("unsupported store driver: %s", sc.Driver)
	}

	snap, err := store.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	zap.L().Info("company snapshot loaded",
		zap.String("driver", sc.Driver),
		zap.Int("companies", snap.Len()),
	)
	return snap, nil
}
