package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/ui/theme"
)

// cardHeight is the number of lines one card takes
const cardHeight = 2

// RenderKanban draws one column per status. Column header counts come from
// the summary so they always agree with the summary panel.
func RenderKanban(k *board.Kanban, summary board.Summary, column int, cursor model.TaskID, width, height int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	n := len(model.Statuses)
	colWidth := (width - 2*n) / n
	if colWidth < 20 {
		colWidth = 20
	}
	// header, borders and scroll hints
	slots := (height - 5) / cardHeight
	if slots < 1 {
		slots = 1
	}

	var cols []string
	for i, status := range model.Statuses {
		active := i == column
		cards := visible(k.Column(status))

		title := styles.ColumnTitle.
			Foreground(t.StatusColor(status)).
			Width(colWidth - 2).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("%s (%d)", status, summary.Headers[status]))

		cur := -1
		if active {
			cur = indexOf(cards, cursor)
		}
		start, end := window(len(cards), cur, slots)

		items := []string{title}
		if start > 0 {
			items = append(items, scrollHint("↑ %d more", start))
		}
		for _, u := range cards[start:end] {
			items = append(items, renderCard(u, active && u.ID == cursor, colWidth-2))
		}
		if rest := len(cards) - end; rest > 0 {
			items = append(items, scrollHint("↓ %d more", rest))
		}
		if len(cards) == 0 {
			items = append(items, styles.Placeholder.Render("(empty)"))
		}

		cs := styles.Column
		if active {
			cs = styles.ColumnFocused
		}
		cols = append(cols, cs.Width(colWidth).Height(height-2).Render(strings.Join(items, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderCard(u *board.Unit, selected bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	cs := styles.Card
	if selected {
		cs = styles.CardSelected
	}
	inner := width - 2

	priority := model.Priority(u.PriorityBadge)
	badge := lipgloss.NewStyle().Foreground(t.PriorityColor(priority)).
		Render(priorityGlyph(priority) + " " + u.PriorityBadge)
	meta := badge
	if due := strings.TrimSpace(u.DueLabel); due != "" {
		dueStyle := styles.DueStyle(u.Due)
		if u.Due == board.DueNone {
			dueStyle = styles.Label
		}
		meta += "  " + dueStyle.Render(due)
	}

	return cs.Width(width).Render(truncate(u.Title, inner) + "\n" + meta)
}

func visible(units []*board.Unit) []*board.Unit {
	var out []*board.Unit
	for _, u := range units {
		if !u.Hidden {
			out = append(out, u)
		}
	}
	return out
}
