package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/comps-engine/internal/model"
	"github.com/sells-group/comps-engine/internal/profile"
)

var (
	profileCategory string
	profileJSON     bool
	seriesChart     string
)

var profileCmd = &cobra.Command{
	Use:   "profile <id>",
	Short: "Print a company's sectioned profile metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		var sections []profile.Section
		if profileCategory != "" {
			s, err := env.Profiles.MetricsByCategory(ctx, args[0], profile.Category(profileCategory))
			if err != nil {
				return err
			}
			sections = []profile.Section{*s}
		} else {
			m, err := env.Profiles.TableMetrics(ctx, args[0])
			if err != nil {
				return err
			}
			sections = m.Sections
		}

		if profileJSON {
			return printJSON(os.Stdout, sections)
		}
		formatSections(os.Stdout, sections)
		return nil
	},
}

var seriesCmd = &cobra.Command{
	Use:   "series <id>",
	Short: "Print a company's quarterly ARR and growth series, or one secondary chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "cli")
		if err != nil {
			return err
		}

		if seriesChart != "" {
			chart := profile.Chart(seriesChart)
			points, err := env.Profiles.ChartSeries(ctx, args[0], chart)
			if err != nil {
				return err
			}
			formatChart(os.Stdout, profile.ChartFields(chart), points)
			return nil
		}

		points, err := env.Profiles.QuarterlySeries(ctx, args[0])
		if err != nil {
			return err
		}
		formatSeries(os.Stdout, points)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileCategory, "category", "", "only this section (operating, financial, company-profiles, trading)")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "print sections as JSON")
	rootCmd.AddCommand(profileCmd)
	seriesCmd.Flags().StringVar(&seriesChart, "chart", "", "secondary chart (quarterly-revenue, ltm-revenue, gross-profit, free-cash-flow, ltm-rule-of-40, historical-multiples, market-cap-implied-arr)")
	rootCmd.AddCommand(seriesCmd)
}

func formatSections(out io.Writer, sections []profile.Section) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, s := range sections {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s\t\n", s.Title)
		for _, r := range s.Rows {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", r.Label, r.Display)
		}
	}
	_ = w.Flush()
}

func formatSeries(out io.Writer, points []model.QuarterPoint) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(w, "QUARTER\tIMPLIED ARR\tNET NEW ARR\tYOY GROWTH\t")
	for _, p := range points {
		_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f%%\t\n", p.Quarter, p.ImpliedArr, p.NetNewArr, p.YoyGrowth)
	}
	_ = w.Flush()
}

func formatChart(out io.Writer, fields []string, points []model.ChartPoint) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprint(w, "QUARTER\t")
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s\t", f)
	}
	_, _ = fmt.Fprintln(w)
	for _, p := range points {
		_, _ = fmt.Fprintf(w, "%s\t", p.Quarter)
		for _, f := range fields {
			_, _ = fmt.Fprintf(w, "%s\t", strconv.FormatFloat(p.Values[f], 'f', -1, 64))
		}
		_, _ = fmt.Fprintln(w)
	}
	_ = w.Flush()
}
