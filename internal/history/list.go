package history

import "github.com/faizmokh/mood/internal/moodlog"

// DisplayRow is one line of the history list.
type DisplayRow struct {
	Date  string        `json:"date"`
	Label string        `json:"label"`
	Color moodlog.Color `json:"color"`
	Glyph string        `json:"glyph"`
	Note  string        `json:"note,omitempty"`
}

// HasNote reports whether the row carries a note worth rendering.
func (r DisplayRow) HasNote() bool {
	return r.Note != ""
}

// BuildDisplayList returns log newest first. The input slice is left as is.
func BuildDisplayList(log []moodlog.Entry) []DisplayRow {
	rows := make([]DisplayRow, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		entry := log[i]
		kind := moodlog.KindOf(entry.Mood)
		rows = append(rows, DisplayRow{
			Date:  entry.Date,
			Label: kind.Label,
			Color: kind.Color,
			Glyph: kind.Glyph,
			Note:  entry.Note,
		})
	}
	return rows
}
