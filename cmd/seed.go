package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comps-engine/internal/store"
)

var seedFrom string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load companies into the configured sqlite or postgres store",
	Long:  "Reads the built-in index (or a YAML file with --from) and replaces the companies table of the configured database store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("cli"); err != nil {
			return err
		}

		var src store.Source = store.FixtureSource{}
		if seedFrom != "" {
			src = store.YAMLSource{Path: seedFrom}
		}
		companies, err := src.Load(ctx)
		if err != nil {
			return eris.Wrap(err, "seed: load source")
		}
		if _, err := store.NewSnapshot(companies); err != nil {
			return eris.Wrap(err, "seed: validate companies")
		}

		db, err := openSQL(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck

		n, err := db.Seed(ctx, companies)
		if err != nil {
			return eris.Wrap(err, "seed")
		}

		zap.L().Info("store seeded",
			zap.String("driver", cfg.Store.Driver),
			zap.Int64("companies", n),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFrom, "from", "", "YAML file of companies (default: built-in index)")
	rootCmd.AddCommand(seedCmd)
}

