package history

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/faizmokh/mood/internal/moodlog"
)

func TestBuildDisplayListNewestFirst(t *testing.T) {
	log := []moodlog.Entry{
		{Date: "6/1/2024", Mood: moodlog.MoodVeryHappy, Note: "great day"},
		{Date: "6/2/2024", Mood: moodlog.MoodSad},
	}

	rows := BuildDisplayList(log)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.Date != "6/2/2024" || first.Label != "Sad" || first.HasNote() {
		t.Fatalf("rows[0] = %#v, want 6/2/2024 Sad without note", first)
	}
	second := rows[1]
	if second.Date != "6/1/2024" || second.Label != "Very happy" || second.Note != "great day" {
		t.Fatalf("rows[1] = %#v, want 6/1/2024 Very happy with note", second)
	}
	if second.Color != moodlog.ColorGreen || second.Glyph != "😁" {
		t.Fatalf("rows[1] color/glyph = %s/%s", second.Color, second.Glyph)
	}

	// The input keeps its original order.
	if log[0].Date != "6/1/2024" {
		t.Fatalf("input log was reordered: %#v", log)
	}
}

func TestBuildDisplayListThreeEntries(t *testing.T) {
	log := []moodlog.Entry{
		{Date: "e1", Mood: 1},
		{Date: "e2", Mood: 2},
		{Date: "e3", Mood: 3},
	}
	rows := BuildDisplayList(log)
	got := []string{rows[0].Date, rows[1].Date, rows[2].Date}
	if strings.Join(got, ",") != "e3,e2,e1" {
		t.Fatalf("order = %v, want [e3 e2 e1]", got)
	}
}

func TestBuildDisplayListEmpty(t *testing.T) {
	rows := BuildDisplayList(nil)
	if rows == nil || len(rows) != 0 {
		t.Fatalf("BuildDisplayList(nil) = %#v, want empty slice", rows)
	}
}

func TestBuildDisplayListUnknownMood(t *testing.T) {
	rows := BuildDisplayList([]moodlog.Entry{{Date: "6/1/2024", Mood: 9}})
	if rows[0].Label != "Unknown" || rows[0].Color != moodlog.ColorGray || rows[0].Glyph != "❓" {
		t.Fatalf("row = %#v, want Unknown/gray/❓", rows[0])
	}
}

func TestDisplayRowOmitsEmptyNoteInJSON(t *testing.T) {
	b, err := json.Marshal(DisplayRow{Date: "6/2/2024", Label: "Sad", Color: moodlog.ColorOrange, Glyph: "😞"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(b), "note") {
		t.Fatalf("json = %s, want note omitted", b)
	}
}
