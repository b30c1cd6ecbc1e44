package moodlog

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewEntryFormatsDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 21, 30, 0, 0, time.Local)
	entry := NewEntry(now, MoodVeryHappy, "great day")
	if entry.Date != "6/1/2024" {
		t.Fatalf("Date = %q, want %q", entry.Date, "6/1/2024")
	}
	if entry.Mood != MoodVeryHappy || entry.Note != "great day" {
		t.Fatalf("entry = %#v", entry)
	}
}

func TestParseMood(t *testing.T) {
	tests := []struct {
		in   string
		want Mood
		err  error
	}{
		{"1", MoodVerySad, nil},
		{" 5 ", MoodVeryHappy, nil},
		{"very-happy", MoodVeryHappy, nil},
		{"Very Sad", MoodVerySad, nil},
		{"neutral", MoodNeutral, nil},
		{"0", 0, ErrInvalidMood},
		{"6", 0, ErrInvalidMood},
		{"ecstatic", 0, ErrInvalidMood},
	}
	for _, tt := range tests {
		got, err := ParseMood(tt.in)
		if !errors.Is(err, tt.err) {
			t.Fatalf("ParseMood(%q) error = %v, want %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseMood(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindOfFallsBackToUnknown(t *testing.T) {
	if k := KindOf(MoodSad); k.Label != "Sad" || k.Color != ColorOrange || k.Glyph != "😞" {
		t.Fatalf("KindOf(Sad) = %#v", k)
	}
	for _, m := range []Mood{0, -1, 6, 9} {
		if k := KindOf(m); k != UnknownKind {
			t.Fatalf("KindOf(%d) = %#v, want UnknownKind", m, k)
		}
	}
	if ColorGray.RGBA() != "rgba(156, 163, 175, 0.8)" {
		t.Fatalf("gray RGBA = %q", ColorGray.RGBA())
	}
	if Color("purple").ANSI() != ColorGray.ANSI() {
		t.Fatalf("unknown color should render gray")
	}
}

func TestNormalizeMood(t *testing.T) {
	tests := map[string]Mood{
		`"3"`:   MoodNeutral,
		`3`:     MoodNeutral,
		`3.0`:   MoodNeutral,
		`"9"`:   9,
		`"03"`:  0,
		`"abc"`: 0,
		`3.5`:   0,
		`null`:  0,
		`true`:  0,
		``:      0,
	}
	for raw, want := range tests {
		if got := normalizeMood(json.RawMessage(raw)); got != want {
			t.Fatalf("normalizeMood(%s) = %v, want %v", raw, got, want)
		}
	}
}

func TestDecodeLogToleratesMissingFields(t *testing.T) {
	entries, err := decodeLog([]byte(`[{"mood":"2"},{"date":"6/2/2024","note":null}]`))
	if err != nil {
		t.Fatalf("decodeLog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Date != "" || entries[0].Mood != MoodSad {
		t.Fatalf("entries[0] = %#v", entries[0])
	}
	if entries[1].Mood != 0 || entries[1].Note != "" {
		t.Fatalf("entries[1] = %#v", entries[1])
	}
}

func TestDecodeLogEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "  ", "[]"} {
		entries, err := decodeLog([]byte(raw))
		if err != nil {
			t.Fatalf("decodeLog(%q): %v", raw, err)
		}
		if len(entries) != 0 {
			t.Fatalf("decodeLog(%q) = %#v, want empty", raw, entries)
		}
	}
}
