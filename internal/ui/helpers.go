package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const compactTimeLayout = "2006-01-02 15:04"

// formatTimestamp renders a server timestamp compactly, passing the
// raw string through when it cannot be parsed.
func formatTimestamp(value string) string {
	t := parseServerTime(value)
	if t.IsZero() {
		return value
	}
	if t.Year() == time.Now().Year() && t.YearDay() == time.Now().YearDay() {
		return t.Format("15:04")
	}
	return t.Format(compactTimeLayout)
}

func parseServerTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(value string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// firstLine returns the text up to the first newline.
func firstLine(value string) string {
	if idx := strings.IndexByte(value, '\n'); idx >= 0 {
		return value[:idx]
	}
	return value
}

// newInput builds a textinput with a placeholder and sane width.
func newInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Width = 40
	return input
}

// cycleFocus blurs every input and focuses the one at index.
func cycleFocus(inputs []textinput.Model, index int) tea.Cmd {
	var cmd tea.Cmd
	for i := range inputs {
		if i == index {
			cmd = inputs[i].Focus()
			continue
		}
		inputs[i].Blur()
	}
	return cmd
}

// updateInputs forwards a message to every input, collecting commands.
func updateInputs(inputs []textinput.Model, msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		inputs[i], cmds[i] = inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// clampSelection keeps a list selection inside [0, length).
func clampSelection(selected, length int) int {
	if length == 0 {
		return 0
	}
	if selected < 0 {
		return 0
	}
	if selected >= length {
		return length - 1
	}
	return selected
}
