package moodlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// record is the stored shape of an entry. Mood is kept raw because older logs
// hold it either as a string ("3") or as a number (3).
type record struct {
	Date *string         `json:"date"`
	Mood json.RawMessage `json:"mood"`
	Note *string         `json:"note"`
}

// decodeRaw splits a stored log into its element records, verifying each one
// is an entry object. Empty input is the empty log.
func decodeRaw(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: log is null", ErrCorruptData)
	}
	for i, item := range items {
		if _, err := decodeRecord(item); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorruptData, i, err)
		}
	}
	return items, nil
}

// decodeLog parses a stored log into entries, preserving stored order.
func decodeLog(data []byte) ([]Entry, error) {
	items, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeRecord(item json.RawMessage) (Entry, error) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Entry{}, fmt.Errorf("expected object, got %s", abbreviate(trimmed))
	}

	var rec record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return Entry{}, err
	}

	var entry Entry
	if rec.Date != nil {
		entry.Date = *rec.Date
	}
	if rec.Note != nil {
		entry.Note = *rec.Note
	}
	entry.Mood = normalizeMood(rec.Mood)
	return entry, nil
}

// normalizeMood maps a stored mood to the enumeration. Only canonical integer
// forms ("3" or 3) count; anything else becomes 0, which renders as Unknown.
func normalizeMood(raw json.RawMessage) Mood {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil || strconv.Itoa(n) != s {
			return 0
		}
		return Mood(n)
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0
		}
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0
		}
		return Mood(int(f))
	}
}

// encodeEntry writes the stored shape. Mood is written as a decimal string so
// logs stay interchangeable with the browser widget's localStorage export.
func encodeEntry(entry Entry) (json.RawMessage, error) {
	out := struct {
		Date string `json:"date"`
		Mood string `json:"mood"`
		Note string `json:"note"`
	}{
		Date: entry.Date,
		Mood: strconv.Itoa(int(entry.Mood)),
		Note: entry.Note,
	}
	return json.Marshal(out)
}

func abbreviate(b []byte) string {
	const limit = 24
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

// joinRaw lays items out as a JSON array without re-encoding them, so records
// read from the log go back byte for byte.
func joinRaw(items []json.RawMessage) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(item)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
