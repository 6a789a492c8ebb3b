package logcat

import (
	"fmt"
	"strings"
)

// LevelMode selects how a level filter interprets its specification.
type LevelMode int

const (
	// LevelModeOff disables level filtering.
	LevelModeOff LevelMode = iota
	// LevelModeSet matches exactly the listed levels ("VDI").
	LevelModeSet
	// LevelModeAtLeast matches the threshold and everything above ("W+").
	LevelModeAtLeast
)

// LevelFilter is a parsed level specification.
type LevelFilter struct {
	Mode LevelMode
	Min  Level  // threshold for LevelModeAtLeast
	Set  uint16 // bitmask of Levels for LevelModeSet
	Spec string // original spec text, for display
}

// ParseLevelSpec parses the two shorthand forms the viewer accepts: a set
// of level letters ("W", "VDI") or a single letter followed by '+' for
// at-or-above ("I+"). "U" in a set matches unparsed lines. Anything else
// is an error so callers can keep the previous filter.
func ParseLevelSpec(spec string) (LevelFilter, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(spec))
	if trimmed == "" {
		return LevelFilter{}, fmt.Errorf("empty level spec")
	}

	if strings.HasSuffix(trimmed, "+") {
		letters := strings.TrimSuffix(trimmed, "+")
		if len(letters) != 1 {
			return LevelFilter{}, fmt.Errorf("level spec %q: want a single level before '+'", spec)
		}
		min := ParseLevel(rune(letters[0]))
		if min == LevelUnknown {
			return LevelFilter{}, fmt.Errorf("level spec %q: unknown level %q", spec, letters)
		}
		return LevelFilter{Mode: LevelModeAtLeast, Min: min, Spec: trimmed}, nil
	}

	var set uint16
	for _, r := range trimmed {
		if r == 'U' {
			set |= 1 << LevelUnknown
			continue
		}
		lvl := ParseLevel(r)
		if lvl == LevelUnknown {
			return LevelFilter{}, fmt.Errorf("level spec %q: unknown level %q", spec, string(r))
		}
		set |= 1 << lvl
	}
	return LevelFilter{Mode: LevelModeSet, Set: set, Spec: trimmed}, nil
}

// Matches reports whether lvl passes the filter. Unknown levels match only
// a set that explicitly includes them; at-or-above never admits them.
func (f LevelFilter) Matches(lvl Level) bool {
	switch f.Mode {
	case LevelModeSet:
		return f.Set&(1<<lvl) != 0
	case LevelModeAtLeast:
		return lvl != LevelUnknown && lvl >= f.Min
	default:
		return true
	}
}

// Filter is the composite predicate the UI edits at runtime. The zero
// value matches every record. Filters are values: mutation happens by
// replacing the whole Filter, never in place, so a snapshot replay always
// sees one coherent configuration.
type Filter struct {
	// PackageEnabled gates the package term. Enabling it with an empty
	// Package contributes no constraint, so a project without a
	// discoverable application id never blanks the view.
	PackageEnabled bool
	Package        string

	Tag    string
	Levels LevelFilter
	Text   string
}

// Match reports whether rec passes every enabled term. Terms are ANDed
// and evaluated cheapest first; the text substring scan runs last.
func (f Filter) Match(rec Record) bool {
	if !f.Levels.Matches(rec.Level) {
		return false
	}
	if f.Tag != "" && !matchTerm(f.Tag, rec.Tag) {
		return false
	}
	if f.PackageEnabled && f.Package != "" && !matchTerm(f.Package, rec.Raw) {
		return false
	}
	if f.Text != "" && !strings.Contains(rec.Raw, f.Text) {
		return false
	}
	return true
}

// Active reports whether any term constrains the view.
func (f Filter) Active() bool {
	return (f.PackageEnabled && f.Package != "") ||
		f.Tag != "" || f.Levels.Mode != LevelModeOff || f.Text != ""
}

// ClearTransient drops every term except the package filter.
func (f Filter) ClearTransient() Filter {
	return Filter{PackageEnabled: f.PackageEnabled, Package: f.Package}
}

// matchTerm is case-sensitive substring containment. Wrapping the stored
// term in double quotes requests an exact match instead; log tags are
// often prefixed or suffixed, so substring is the default.
func matchTerm(term, value string) bool {
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return value == term[1:len(term)-1]
	}
	return strings.Contains(value, term)
}
