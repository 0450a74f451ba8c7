package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	listFlags tableFlags
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the comparison table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		session, err := listFlags.session()
		if err != nil {
			return err
		}
		defs, err := resolveColumns(session.Table.VisibleColumns)
		if err != nil {
			return err
		}

		resp, err := env.Engine.Query(ctx, session.Request())
		if err != nil {
			return eris.Wrap(err, "list")
		}

		if listJSON {
			return printJSON(os.Stdout, resp)
		}

		if len(resp.Companies) == 0 {
			fmt.Fprintln(os.Stderr, "No companies match.")
		}
		formatCompanyTable(os.Stdout, resp.Companies, resp.Aggregates, defs)
		p := resp.Pagination
		fmt.Fprintf(os.Stderr, "page %d of %d (%d companies)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
		return nil
	},
}

func init() {
	listFlags.register(listCmd, true)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the raw response as JSON")
	rootCmd.AddCommand(listCmd)
}
