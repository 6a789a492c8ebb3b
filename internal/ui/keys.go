package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View control
	Pause key.Binding
	Copy  key.Binding

	// Filters
	TogglePackage key.Binding
	SetPackage    key.Binding
	SetTag        key.Binding
	SetLevel      key.Binding
	SetText       key.Binding
	ClearFilters  key.Binding
	ClearAll      key.Binding

	// Scrolling
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Prompt
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel prompt"),
		),

		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Pause/resume view"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy visible lines"),
		),

		TogglePackage: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle package filter"),
		),
		SetPackage: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Set package name"),
		),
		SetTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Set/clear tag filter"),
		),
		SetLevel: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Set level filter (W, I+, VDI)"),
		),
		SetText: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Set text filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters (keep package)"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear all filters"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom, resume follow"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Copy, k.Up, k.Down, k.Top, k.Bottom},
		{k.TogglePackage, k.SetPackage, k.SetTag, k.SetLevel, k.SetText},
		{k.ClearFilters, k.ClearAll},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
