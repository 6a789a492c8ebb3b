package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/droidtail/droidtail/internal/logcat"
)

// promptKind identifies which filter field an open prompt edits.
type promptKind int

const (
	promptNone promptKind = iota
	promptPackage
	promptTag
	promptLevel
	promptText
)

func (k promptKind) label() string {
	switch k {
	case promptPackage:
		return "package"
	case promptTag:
		return "tag"
	case promptLevel:
		return "level (W, I+, VDI)"
	case promptText:
		return "text"
	default:
		return ""
	}
}

// openPrompt begins inline editing of one filter field. The current
// value is pre-filled so enter-without-changes is a no-op and an empty
// submission clears the field.
func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.inlineErr = ""

	switch kind {
	case promptPackage:
		m.input.SetValue(m.filter.Package)
	case promptTag:
		m.input.SetValue(m.filter.Tag)
	case promptLevel:
		m.input.SetValue(m.filter.Levels.Spec)
	case promptText:
		m.input.SetValue(m.filter.Text)
	}
	m.input.CursorEnd()
	m.input.Focus()
	return m, nil
}

// handlePromptKey routes keystrokes while a prompt is open. The prompt
// blocks only the controller; tailer events keep flowing into the ring
// and are folded in as usual.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		kind := m.prompt
		m.closePrompt()
		m.applyPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
}

// applyPrompt commits a prompt value to the filter. An empty value
// clears the field. A bad level spec keeps the previous filter and
// surfaces the parse error inline.
func (m *Model) applyPrompt(kind promptKind, value string) {
	switch kind {
	case promptPackage:
		m.filter.Package = value
		m.filter.PackageEnabled = value != ""

	case promptTag:
		m.filter.Tag = value

	case promptLevel:
		if value == "" {
			m.filter.Levels = logcat.LevelFilter{}
			break
		}
		levels, err := logcat.ParseLevelSpec(value)
		if err != nil {
			m.inlineErr = err.Error()
			return
		}
		m.filter.Levels = levels

	case promptText:
		m.filter.Text = value
	}

	m.inlineErr = ""
	m.rebuildVisible()
}
