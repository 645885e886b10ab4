package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/ui/theme"
)

// RenderSummary draws the counter panel: total and per-status counts of
// what is visible, followed by the active filter
func RenderSummary(s board.Summary, f board.Filter) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles
	sep := styles.HelpSeparator.Render(" │ ")

	parts := []string{
		styles.PanelTitle.Render("Total") + " " + fmt.Sprint(s.Panel.Total),
	}
	for _, status := range model.Statuses {
		label := lipgloss.NewStyle().Foreground(t.StatusColor(status)).Render(string(status))
		parts = append(parts, label+" "+fmt.Sprint(s.Panel.Of(status)))
	}
	line := strings.Join(parts, sep)

	if f.Active() {
		var filters []string
		if f.Status != board.StatusAll && f.Status != "" {
			filters = append(filters, "status: "+string(f.Status))
		}
		if f.Search != "" {
			filters = append(filters, fmt.Sprintf("search: %q", f.Search))
		}
		line += sep + lipgloss.NewStyle().Foreground(t.Info).Italic(true).
			Render("["+strings.Join(filters, ", ")+"]")
	}
	return line
}

// RenderEmpty draws the empty-state panel shown when nothing is visible
func RenderEmpty(filtered bool, width, height int) string {
	styles := theme.Current.Styles

	msg := "No tasks yet."
	if filtered {
		msg = "No tasks match the current filter."
	}
	hint := styles.HelpKey.Render("n") + styles.HelpDesc.Render(" add a task")
	if filtered {
		hint += styles.HelpSeparator.Render(" │ ") +
			styles.HelpKey.Render("F") + styles.HelpDesc.Render(" clear filter")
	}

	panel := styles.Panel.Render(styles.Placeholder.Render(msg) + "\n\n" + hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
