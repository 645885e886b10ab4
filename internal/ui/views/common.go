// Package views renders the board's projections. Renderers are pure: they
// read board state and return strings, and never mutate anything.
package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/ui/theme"
)

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// window returns the [start, end) slice of n items that keeps cursor in a
// viewport of size rows
func window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := 0
	if cursor >= size {
		start = cursor - size + 1
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}

// indexOf returns the position of id among units, or -1
func indexOf(units []*board.Unit, id model.TaskID) int {
	for i, u := range units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// priorityGlyph returns the badge glyph for a priority
func priorityGlyph(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "▲"
	case model.PriorityMedium:
		return "●"
	case model.PriorityLow:
		return "▽"
	}
	return "-"
}

func scrollHint(format string, n int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Current.Theme.Subtle).
		Render(fmt.Sprintf(format, n))
}
