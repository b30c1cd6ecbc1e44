package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/mood/internal/history"
)

type historyReport struct {
	Entries []history.DisplayRow `json:"entries"`
	Chart   history.ChartSeries  `json:"chart"`
}

func newHistoryCommand(ctx context.Context, deps Deps) *cobra.Command {
	var (
		jsonOutput bool
		window     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded moods, newest first, followed by a chart of recent ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadEntries(ctx, deps.store(deps.Logger), deps.Logger)
			if err != nil {
				return err
			}

			rows := history.BuildDisplayList(entries)
			series := history.BuildChartSeriesWindow(entries, deps.window(window))
			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, historyReport{Entries: rows, Chart: series})
			}

			if len(rows) == 0 {
				fmt.Fprintln(out, emptyHistoryMessage)
				return nil
			}
			printRows(out, rows)
			fmt.Fprintln(out)
			printChart(out, series)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print entries and chart data as JSON")
	cmd.Flags().IntVar(&window, "window", 0, "Number of recent entries to chart (default from config)")

	return cmd
}

func newChartCommand(ctx context.Context, deps Deps) *cobra.Command {
	var (
		jsonOutput bool
		window     int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart the most recent moods, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadEntries(ctx, deps.store(deps.Logger), deps.Logger)
			if err != nil {
				return err
			}

			series := history.BuildChartSeriesWindow(entries, deps.window(window))
			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, series)
			}
			if series.Empty() {
				fmt.Fprintln(out, emptyHistoryMessage)
				return nil
			}
			printChart(out, series)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print chart data as JSON")
	cmd.Flags().IntVar(&window, "window", 0, "Number of recent entries to chart (default from config)")

	return cmd
}
