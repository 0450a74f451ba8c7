package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/comps-engine/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one company's full record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		c, err := env.Engine.Company(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, c)
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the available filter options and range bounds as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		opts, err := env.Engine.FilterOptions(ctx)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, opts)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find companies whose name or sector contains the query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		found, err := env.Engine.Search(ctx, args[0])
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Fprintf(os.Stderr, "No companies match %q.\n", args[0])
			return nil
		}
		formatRefs(os.Stdout, found)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(searchCmd)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRefs(out io.Writer, companies []model.Company) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSECTOR")
	for _, c := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Sector)
	}
	_ = w.Flush()
}
