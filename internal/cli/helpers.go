package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/faizmokh/mood/internal/history"
	"github.com/faizmokh/mood/internal/moodlog"
)

const emptyHistoryMessage = "No entries yet. Start tracking your mood!"

func resolveDate(dateFlag string, now time.Time) (time.Time, error) {
	if dateFlag == "" {
		return now, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", dateFlag, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// loadEntries reads the log. A corrupt log is reported and shown as empty so
// the history views still render.
func loadEntries(ctx context.Context, store *moodlog.Store, logger *log.Logger) ([]moodlog.Entry, error) {
	entries, err := store.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, moodlog.ErrCorruptData) {
			logger.Warn("mood log is unreadable, showing it as empty", "key", store.Key(), "err", err)
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

var colorAttributes = map[moodlog.Color][]color.Attribute{
	moodlog.ColorRed:    {color.FgRed},
	moodlog.ColorOrange: {color.FgHiRed},
	moodlog.ColorYellow: {color.FgYellow},
	moodlog.ColorBlue:   {color.FgBlue},
	moodlog.ColorGreen:  {color.FgGreen},
	moodlog.ColorGray:   {color.FgHiBlack},
}

func paint(c moodlog.Color) *color.Color {
	attrs, ok := colorAttributes[c]
	if !ok {
		attrs = colorAttributes[moodlog.ColorGray]
	}
	return color.New(attrs...)
}

func formatLogged(entry moodlog.Entry) string {
	kind := moodlog.KindOf(entry.Mood)
	line := fmt.Sprintf("Logged %s %s %s", entry.Date, kind.Label, kind.Glyph)
	if entry.Note != "" {
		line += fmt.Sprintf(" (%s)", entry.Note)
	}
	return line
}

func printRows(out io.Writer, rows []history.DisplayRow) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow("DATE", "MOOD", "NOTE")
	for _, row := range rows {
		tbl.AddRow(row.Date, paint(row.Color).Sprintf("%s %s", row.Glyph, row.Label), row.Note)
	}
	fmt.Fprintln(out, tbl)
}

func printChart(out io.Writer, series history.ChartSeries) {
	bold := color.New(color.Bold, color.Underline)
	fmt.Fprintln(out, bold.Sprint(history.SeriesTitle))

	width := 0
	for _, label := range series.Labels() {
		width = max(width, len(label))
	}
	for _, p := range series.Points {
		axis := history.AxisLabel(p.Value)
		if axis == "" {
			axis = moodlog.UnknownKind.Label
		}
		bar := "·"
		if p.Value >= 1 && p.Value <= history.MaxValue {
			bar = strings.Repeat("█", p.Value*2)
		}
		fmt.Fprintf(out, "%-*s  %-10s %s\n", width, p.Label, axis, paint(p.Color).Sprint(bar))
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
