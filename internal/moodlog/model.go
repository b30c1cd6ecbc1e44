package moodlog

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar format entries are stamped with (M/D/YYYY).
const DateLayout = "1/2/2006"

// Entry is one submitted mood. Entries are never modified once appended.
type Entry struct {
	Date string
	Mood Mood
	Note string
}

// NewEntry stamps an entry with the calendar date of now.
func NewEntry(now time.Time, mood Mood, note string) Entry {
	return Entry{
		Date: now.Format(DateLayout),
		Mood: mood,
		Note: note,
	}
}

// Mood is a level on the 1..5 scale. Values outside the scale can still be
// read back from older logs; they resolve to the Unknown kind.
type Mood int

const (
	MoodVerySad Mood = iota + 1
	MoodSad
	MoodNeutral
	MoodHappy
	MoodVeryHappy
)

// Moods lists the scale in ascending order.
var Moods = []Mood{MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy}

// Valid reports whether m is on the scale.
func (m Mood) Valid() bool {
	return m >= MoodVerySad && m <= MoodVeryHappy
}

func (m Mood) String() string {
	return KindOf(m).Label
}

var moodNames = map[string]Mood{
	"very-sad":   MoodVerySad,
	"sad":        MoodSad,
	"neutral":    MoodNeutral,
	"happy":      MoodHappy,
	"very-happy": MoodVeryHappy,
}

// ParseMood accepts a scale value ("1".."5") or a name such as "very-happy".
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mood(n); m.Valid() {
			return m, nil
		}
		return 0, ErrInvalidMood
	}
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	if m, ok := moodNames[s]; ok {
		return m, nil
	}
	return 0, ErrInvalidMood
}
