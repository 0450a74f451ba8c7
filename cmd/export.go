package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comps-engine/internal/export"
)

var (
	exportFlags tableFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered comparison table to an XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		session, err := exportFlags.session()
		if err != nil {
			return err
		}

		rows, err := env.Engine.Rows(ctx, session.Request())
		if err != nil {
			return eris.Wrap(err, "export")
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", exportOut)
		}
		if err := export.WriteXLSX(f, rows.Companies, rows.Aggregates, session.Table.VisibleColumns); err != nil {
			_ = f.Close()
			return eris.Wrap(err, "export")
		}
		if err := f.Close(); err != nil {
			return eris.Wrapf(err, "export: close %s", exportOut)
		}

		zap.L().Info("comps table exported",
			zap.String("path", exportOut),
			zap.Int("companies", len(rows.Companies)),
		)
		return nil
	},
}

func init() {
	exportFlags.register(exportCmd, false)
	exportCmd.Flags().StringVar(&exportOut, "out", "comps.xlsx", "output file")
	rootCmd.AddCommand(exportCmd)
}
