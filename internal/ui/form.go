package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/quickadd"
	"github.com/dori/taskboard/internal/ui/theme"
)

// formField is the focused field of the task form
type formField int

const (
	fieldDescription formField = iota
	fieldStatus
	fieldPriority
	fieldDueDate
	fieldCount
)

// taskForm is the modal create/edit form. It only holds what is typed;
// the board session owns the draft that gets submitted.
type taskForm struct {
	description textinput.Model
	dueDate     textinput.Model
	status      model.Status
	priority    model.Priority
	focus       formField
}

func newTaskForm() taskForm {
	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "What needs doing?"
	desc.CharLimit = 256

	due := textinput.New()
	due.Prompt = ""
	due.Placeholder = "YYYY-MM-DD, tomorrow, fri..."
	due.CharLimit = 32

	return taskForm{
		description: desc,
		dueDate:     due,
		status:      model.StatusTodo,
		priority:    model.PriorityMedium,
	}
}

// Load fills the form from a session draft and focuses the description
func (f *taskForm) Load(d board.Draft) tea.Cmd {
	f.description.SetValue(d.Description)
	f.description.CursorEnd()
	f.dueDate.SetValue(d.DueDate)
	f.status = d.Status
	f.priority = d.Priority
	return f.setFocus(fieldDescription)
}

// Draft reads the form back. Natural due dates are normalized to YYYY-MM-DD.
func (f taskForm) Draft(now time.Time) board.Draft {
	return board.Draft{
		Description: f.description.Value(),
		Status:      f.status,
		Priority:    f.priority,
		DueDate:     quickadd.NormalizeDate(f.dueDate.Value(), now),
	}
}

func (f *taskForm) setFocus(field formField) tea.Cmd {
	f.focus = (field + fieldCount) % fieldCount
	f.description.Blur()
	f.dueDate.Blur()
	switch f.focus {
	case fieldDescription:
		return f.description.Focus()
	case fieldDueDate:
		return f.dueDate.Focus()
	}
	return nil
}

// Update handles a key while the form is open. Submit and cancel are the
// caller's business.
func (f taskForm) Update(msg tea.KeyMsg, keys KeyMap) (taskForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		return f, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.PrevField):
		return f, f.setFocus(f.focus - 1)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	case fieldStatus:
		if step := cycleStep(msg); step != 0 {
			f.status = cycle(model.Statuses, f.status, step)
		}
	case fieldPriority:
		if step := cycleStep(msg); step != 0 {
			f.priority = cycle(model.Priorities, f.priority, step)
		}
	}
	return f, cmd
}

func cycleStep(msg tea.KeyMsg) int {
	switch msg.String() {
	case "right", "l", " ":
		return 1
	case "left", "h":
		return -1
	}
	return 0
}

func cycle[T comparable](values []T, current T, step int) T {
	for i, v := range values {
		if v == current {
			return values[(i+step+len(values))%len(values)]
		}
	}
	return values[0]
}

// View renders the form as a dialog
func (f taskForm) View(kind board.SessionKind, submitting bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	inner := width - 8
	if inner > 60 {
		inner = 60
	}
	if inner < 24 {
		inner = 24
	}
	f.description.Width = inner - 4
	f.dueDate.Width = inner - 4

	label := func(field formField, name string) string {
		s := styles.Label
		if f.focus == field {
			s = s.Foreground(t.Primary).Bold(true)
		}
		return s.Render(name)
	}
	box := func(field formField, content string) string {
		s := styles.Input
		if f.focus == field {
			s = styles.InputFocused
		}
		return s.Width(inner).Render(content)
	}
	choice := func(field formField, value string, color lipgloss.Color) string {
		v := lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
		if f.focus == field {
			return "‹ " + v + " ›"
		}
		return "  " + v
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(kind.String()))
	b.WriteString("\n")
	b.WriteString(label(fieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(box(fieldDescription, f.description.View()))
	b.WriteString("\n")
	b.WriteString(label(fieldStatus, "Status    "))
	b.WriteString(choice(fieldStatus, string(f.status), t.StatusColor(f.status)))
	b.WriteString("\n")
	b.WriteString(label(fieldPriority, "Priority  "))
	b.WriteString(choice(fieldPriority, string(f.priority), t.PriorityColor(f.priority)))
	b.WriteString("\n")
	b.WriteString(label(fieldDueDate, "Due date"))
	b.WriteString("\n")
	b.WriteString(box(fieldDueDate, f.dueDate.View()))

	if submitting {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Info).Italic(true).Render("Saving..."))
	}

	return styles.Dialog.Render(b.String())
}
