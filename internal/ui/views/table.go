package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/ui/theme"
)

// Fixed table column widths; the description takes what is left
const (
	handleWidth   = 2
	statusWidth   = 13
	priorityWidth = 9
	dueWidth      = 12
)

// RenderTable draws the visible rows of the table in order, keeping the
// cursor row on screen
func RenderTable(t *board.Table, cursor model.TaskID, width, height int) string {
	styles := theme.Current.Styles
	rows := board.VisibleUnits(t)

	descWidth := width - handleWidth - statusWidth - priorityWidth - dueWidth - 4
	if descWidth < 12 {
		descWidth = 12
	}

	var b strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(handleWidth).Render(""),
		lipgloss.NewStyle().Width(descWidth+1).Render("Task"),
		lipgloss.NewStyle().Width(statusWidth+1).Render("Status"),
		lipgloss.NewStyle().Width(priorityWidth+1).Render("Priority"),
		lipgloss.NewStyle().Width(dueWidth).Render("Due"),
	)
	b.WriteString(styles.TableHeader.Render(header))
	b.WriteString("\n")

	// header takes two lines, scroll hints one each
	start, end := window(len(rows), indexOf(rows, cursor), height-4)
	if start > 0 {
		b.WriteString(scrollHint("  ↑ %d more above", start))
		b.WriteString("\n")
	}
	for _, u := range rows[start:end] {
		b.WriteString(renderRow(u, u.ID == cursor, descWidth))
		b.WriteString("\n")
	}
	if rest := len(rows) - end; rest > 0 {
		b.WriteString(scrollHint("  ↓ %d more below", rest))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderRow(u *board.Unit, selected bool, descWidth int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	base := styles.RowNormal
	if selected {
		base = styles.RowSelected
	}
	desc := base
	if u.Status == model.StatusDone && !selected {
		desc = styles.RowDone
	}

	status := model.Status(u.Cell(board.CellStatus))
	priority := model.Priority(u.Cell(board.CellPriority))

	cells := []string{
		base.Foreground(t.Subtle).Width(handleWidth).Render(u.Cell(board.CellHandle)),
		desc.Width(descWidth + 1).Render(truncate(u.Cell(board.CellDescription), descWidth)),
		base.Foreground(t.StatusColor(status)).Width(statusWidth + 1).Render(string(status)),
		base.Foreground(t.PriorityColor(priority)).Width(priorityWidth + 1).
			Render(priorityGlyph(priority) + " " + string(priority)),
		styles.DueStyle(u.Due).Inherit(base).Width(dueWidth).Render(u.Cell(board.CellDue)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
