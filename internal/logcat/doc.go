// Package logcat models Android logcat output for the viewer.
//
// It contains the pieces that are independent of any terminal or file
// concerns: the Record value parsed from a "threadtime" formatted line,
// the bounded Ring that holds the most recent records, and the Filter
// predicate the UI edits at runtime.
//
// # Records
//
// ParseLine turns one raw line into a Record. Lines that do not match the
// threadtime layout are never dropped; they come back with Parsed=false,
// LevelUnknown, and the raw text preserved so nothing disappears silently.
//
// # Ring
//
// Ring is a fixed-capacity FIFO over Records. Appends are O(1) and evict
// the oldest entry once the capacity is reached. Snapshot returns a
// consistent copy that is safe to iterate while a tailer keeps appending.
//
// # Filter
//
// Filter is a value type; Match is pure and deterministic. All enabled
// terms are ANDed together, evaluated cheapest first (level, tag, package,
// text), and an unset term always matches. Replaying an unchanged Ring
// snapshot through an unchanged Filter always yields the same sequence,
// which is what lets the UI recompute the visible set on every filter
// edit instead of discarding non-matching lines at ingest time.
package logcat
