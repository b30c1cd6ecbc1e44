package history

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the calendar shapes entries have been stamped with over
// time. Order matters: US month-first is tried before anything else.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// ShortDate renders a stored date as month/day. Dates that do not parse keep
// their first two slash-separated parts, or come back unchanged when there is
// no slash at all.
func ShortDate(date string) string {
	trimmed := strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		}
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return date
}
