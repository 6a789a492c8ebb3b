package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/droidtail/droidtail/internal/logcat"
	"github.com/droidtail/droidtail/internal/prefs"
	"github.com/droidtail/droidtail/internal/tail"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Ring      *logcat.Ring
	Events    <-chan tail.Event
	LogPath   string
	AppID     string
	Filter    logcat.Filter // startup filter (package term pre-seeded)
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea: the interactive
// controller and the renderer of the filtered projection.
type Model struct {
	ring      *logcat.Ring
	events    <-chan tail.Event
	logPath   string
	appID     string
	prefsPath string

	keys  keyMap
	theme Theme

	// Filter and view state. Mutated only inside Update.
	filter   logcat.Filter
	paused   bool
	showHelp bool
	frozen   bool
	tailErr  error
	rotated  bool

	// Visible projection: the records passing the filter, in order. The
	// window freezes while paused; the ring keeps growing underneath.
	visible []logcat.Record

	// Prompt state.
	prompt    promptKind
	input     textinput.Model
	inlineErr string

	viewport viewport.Model
	follow   bool
	width    int
	height   int
	ready    bool
}

// New creates the root model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.CharLimit = 120

	return Model{
		ring:      opts.Ring,
		events:    opts.Events,
		logPath:   opts.LogPath,
		appID:     opts.AppID,
		prefsPath: prefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		filter:    opts.Filter,
		input:     input,
		follow:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentHeight(msg.Height))
			m.ready = true
			m.rebuildVisible()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentHeight(msg.Height)
			m.refreshContent()
		}
		return m, nil

	case tailEventMsg:
		return m.handleTailEvent(tail.Event(msg))

	case tailClosedMsg:
		// Tailer goroutine is gone; nothing further arrives.
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// contentHeight is the viewport height: full height minus the header and
// status lines.
func contentHeight(total int) int {
	h := total - 2
	if h < 1 {
		h = 1
	}
	return h
}

// handleTailEvent folds one tailer notification into the model.
func (m Model) handleTailEvent(ev tail.Event) (tea.Model, tea.Cmd) {
	if ev.Err != nil {
		// Terminal: the viewer stays usable over buffered history.
		m.frozen = true
		m.tailErr = ev.Err
		return m, nil
	}
	// The rotated badge stays up until the new file produces content,
	// then clears so it marks a recent rotation rather than a past one.
	if ev.Rotated {
		m.rotated = true
	} else if len(ev.Records) > 0 {
		m.rotated = false
	}

	if !m.paused && len(ev.Records) > 0 {
		appended := false
		for _, rec := range ev.Records {
			if m.filter.Match(rec) {
				m.visible = append(m.visible, rec)
				appended = true
			}
		}
		if overflow := len(m.visible) - m.ring.Cap(); overflow > 0 {
			m.visible = append([]logcat.Record(nil), m.visible[overflow:]...)
		}
		if appended {
			m.refreshContent()
		}
	}

	return m, waitForEvent(m.events)
}

// handleKey processes one keystroke.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The quit binding works everywhere, prompts and overlays included.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// Any other key closes help.
		m.showHelp = false
		return m, nil
	}

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		if !m.paused {
			// Converge on everything buffered while frozen.
			m.rebuildVisible()
		}
		return m, nil

	case key.Matches(msg, keys.TogglePackage):
		m.filter.PackageEnabled = !m.filter.PackageEnabled
		m.rebuildVisible()
		return m, nil

	case key.Matches(msg, keys.SetPackage):
		return m.openPrompt(promptPackage)

	case key.Matches(msg, keys.SetTag):
		return m.openPrompt(promptTag)

	case key.Matches(msg, keys.SetLevel):
		return m.openPrompt(promptLevel)

	case key.Matches(msg, keys.SetText):
		return m.openPrompt(promptText)

	case key.Matches(msg, keys.ClearFilters):
		m.filter = m.filter.ClearTransient()
		m.inlineErr = ""
		m.rebuildVisible()
		return m, nil

	case key.Matches(msg, keys.ClearAll):
		m.filter = logcat.Filter{}
		m.inlineErr = ""
		m.rebuildVisible()
		return m, nil

	case key.Matches(msg, keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, keys.Copy):
		return m, copyCmd(m.visibleText())

	case key.Matches(msg, keys.Bottom):
		m.follow = true
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, keys.Top):
		m.follow = false
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, keys.Up):
		m.follow = false
		m.viewport.ScrollUp(1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.viewport.ScrollDown(1)
		m.follow = m.viewport.AtBottom()
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.follow = false
		m.viewport.PageUp()
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.viewport.PageDown()
		m.follow = m.viewport.AtBottom()
		return m, nil

	case key.Matches(msg, keys.HalfPageUp):
		m.follow = false
		m.viewport.HalfPageUp()
		return m, nil

	case key.Matches(msg, keys.HalfPageDown):
		m.viewport.HalfPageDown()
		m.follow = m.viewport.AtBottom()
		return m, nil
	}

	return m, nil
}

// rebuildVisible re-derives the visible window by replaying the full
// ring snapshot through the current filter. This is the only correct
// response to a filter mutation: filtering future arrivals alone would
// leave stale lines on screen and hide history that now matches.
func (m *Model) rebuildVisible() {
	snapshot := m.ring.Snapshot()
	visible := make([]logcat.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		if m.filter.Match(rec) {
			visible = append(visible, rec)
		}
	}
	m.visible = visible
	m.refreshContent()
}

// refreshContent re-renders the viewport from the visible records.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderRecords())
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// visibleText returns the raw text of the visible window, for the
// clipboard.
func (m Model) visibleText() string {
	if len(m.visible) == 0 {
		return ""
	}
	text := make([]byte, 0, len(m.visible)*64)
	for i, rec := range m.visible {
		if i > 0 {
			text = append(text, '\n')
		}
		text = append(text, rec.Raw...)
	}
	return string(text)
}

// Messages

type tailEventMsg tail.Event

type tailClosedMsg struct{}

// Commands

// waitForEvent blocks on the tailer channel; Bubble Tea runs it off the
// Update loop, so keystrokes stay live while waiting.
func waitForEvent(events <-chan tail.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return tailClosedMsg{}
		}
		return tailEventMsg(ev)
	}
}

// newProgram builds the Bubble Tea program. The options context is
// wired into the program itself so external cancellation (a delivered
// SIGINT/SIGTERM) ends the session instead of stopping only the tailer.
func newProgram(opts Options, extra ...tea.ProgramOption) *tea.Program {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	progOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}, extra...)
	return tea.NewProgram(New(opts), progOpts...)
}

// Run starts the Bubble Tea program and blocks until quit or the
// context is cancelled.
func Run(opts Options) error {
	_, err := newProgram(opts).Run()
	return err
}
