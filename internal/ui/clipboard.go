package ui

import (
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// copyCmd writes text to the local clipboard through an OSC52 escape
// sequence, which works across SSH. Multiplexers need the sequence
// wrapped for passthrough.
func copyCmd(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		seq := osc52.New(text).Limit(100 * 1024)

		term := strings.ToLower(os.Getenv("TERM"))
		if tmux := os.Getenv("TMUX"); tmux != "" || strings.HasPrefix(term, "tmux") {
			seq = seq.Tmux()
		} else if strings.HasPrefix(term, "screen") {
			seq = seq.Screen()
		}

		_, _ = seq.WriteTo(os.Stdout)
		return nil
	}
}
