// Package history derives the history panel from a mood log: a newest-first
// display list and a short, oldest-first chart series. Nothing here mutates
// the log or fails on malformed entries.
package history
