package main

import (
	"context"

	"github.com/sells-group/comps-engine/internal/comps"
	"github.com/sells-group/comps-engine/internal/profile"
	"github.com/sells-group/comps-engine/internal/store"
)

// engineEnv holds the loaded snapshot and the services built on it.
type engineEnv struct {
	Snapshot *store.Snapshot
	Engine   *comps.Engine
	Profiles *profile.Projector
}

// initEngine validates config for mode, loads the snapshot and builds the
// engine and profile projector.
func initEngine(ctx context.Context, mode string) (*engineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	snap, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	return &engineEnv{
		Snapshot: snap,
		Engine:   comps.NewEngine(snap, cfg.Query),
		Profiles: profile.NewProjector(snap, profile.SyntheticSeries{}),
	}, nil
}
