package moodlog

import "errors"

// ErrCorruptData is returned when the stored log is not an array of entry objects.
// Callers are expected to degrade to an empty log.
var ErrCorruptData = errors.New("mood log is corrupt")

// ErrStorage indicates the backing store rejected a read or write.
var ErrStorage = errors.New("mood log storage failed")

// ErrInvalidMood is returned for values outside the 1..5 scale.
var ErrInvalidMood = errors.New("mood must be between 1 and 5")
