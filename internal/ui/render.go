package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/droidtail/droidtail/internal/logcat"
)

// renderMain lays out the full screen: header, log pane, status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader paints the top line: logo, file, app id, state badges.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("droidtail"),
		styles.MutedText.Render(filepath.Base(m.logPath)),
	}
	if m.appID != "" {
		parts = append(parts, styles.FaintText.Render(m.appID))
	}
	if m.paused {
		parts = append(parts, styles.WarnText.Render("PAUSED"))
	}
	if m.frozen {
		parts = append(parts, styles.DangerText.Render("FROZEN"))
	}
	if m.rotated {
		parts = append(parts, styles.FaintText.Render("rotated"))
	}

	line := strings.Join(parts, styles.FaintText.Render("  "))
	return styles.Header.Width(m.width).Render(line)
}

// renderRecords colorizes the visible window, one wrapped line block per
// record. Level drives the color; unparsed lines render faint so
// malformed input stays on screen without shouting.
func (m Model) renderRecords() string {
	if len(m.visible) == 0 {
		return m.theme.Styles().FaintText.Render("(no matching log lines)")
	}

	styles := m.theme.Styles()
	width := m.viewport.Width
	var b strings.Builder
	for i, rec := range m.visible {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := rec.Raw
		if width > 0 {
			line = wordwrap.String(line, width)
		}
		b.WriteString(styles.LevelStyle(rec.Level).Render(line))
	}
	return b.String()
}

// renderStatus paints the bottom line: prompt, error, or the filter and
// follow summary.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()

	if m.prompt != promptNone {
		label := styles.AccentText.Render(m.prompt.label() + ": ")
		return styles.Status.Width(m.width).Render(label + m.input.View())
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d/%d lines", len(m.visible), m.ring.Len()))

	if summary := filterSummary(m.filter); summary != "" {
		parts = append(parts, summary)
	}
	if m.paused {
		parts = append(parts, "paused")
	} else if m.follow {
		parts = append(parts, "follow")
	}
	if m.frozen {
		parts = append(parts, "stream ended, history only")
	}

	line := strings.Join(parts, "  •  ")
	if m.inlineErr != "" {
		line += "  •  " + styles.DangerText.Render(m.inlineErr)
	}
	return styles.Status.Width(m.width).Render(line)
}

// filterSummary condenses the active filter terms for the status line.
func filterSummary(f logcat.Filter) string {
	var parts []string
	if f.PackageEnabled && f.Package != "" {
		parts = append(parts, "pkg="+f.Package)
	}
	if f.Tag != "" {
		parts = append(parts, "tag="+f.Tag)
	}
	if f.Levels.Spec != "" {
		parts = append(parts, "lvl="+f.Levels.Spec)
	}
	if f.Text != "" {
		parts = append(parts, "text="+f.Text)
	}
	return strings.Join(parts, " ")
}
