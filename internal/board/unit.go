package board

import (
	"strings"

	"github.com/dori/taskboard/internal/model"
)

// UnitKind tells which layout a unit is rendered with
type UnitKind int

const (
	KindRow  UnitKind = iota // table row
	KindCard                 // kanban card
)

// Row cell slots, in column order
const (
	CellHandle = iota
	CellDescription
	CellStatus
	CellPriority
	CellDue
	rowCells
)

// dueDatePlaceholder is what a row shows when a task has no due date
const dueDatePlaceholder = "-"

// rowHandle is the drag grip shown in the first table column
const rowHandle = "≡"

// Unit is the rendered projection of one task inside one view.
// ID and Status are data attributes; the remaining fields are rendered text.
type Unit struct {
	Kind   UnitKind
	ID     model.TaskID
	Status model.Status

	// Card slots
	Title         string
	PriorityBadge string
	DueLabel      string

	// Row slots, indexed by the cell* constants
	Cells []string

	Hidden bool
	Due    DueClass
}

// TaskRecord is the set of task fields read back out of a unit
type TaskRecord struct {
	ID          model.TaskID
	Description string
	Status      model.Status
	Priority    model.Priority
	DueDate     string
}

func newCard(t model.Task) *Unit {
	return &Unit{
		Kind:          KindCard,
		ID:            t.ID,
		Status:        t.Status,
		Title:         t.Description,
		PriorityBadge: string(t.Priority),
		DueLabel:      t.DueDate,
	}
}

func newRow(t model.Task) *Unit {
	due := t.DueDate
	if due == "" {
		due = dueDatePlaceholder
	}
	cells := make([]string, rowCells)
	cells[CellHandle] = rowHandle
	cells[CellDescription] = t.Description
	cells[CellStatus] = string(t.Status)
	cells[CellPriority] = string(t.Priority)
	cells[CellDue] = due
	return &Unit{
		Kind:   KindRow,
		ID:     t.ID,
		Status: t.Status,
		Cells:  cells,
	}
}

// Text returns everything the unit renders, used for search matching
func (u *Unit) Text() string {
	if u == nil {
		return ""
	}
	if u.Kind == KindCard {
		return strings.Join([]string{u.Title, u.PriorityBadge, u.DueLabel}, " ")
	}
	return strings.Join(u.Cells, " ")
}

// setStatus rewrites the status attribute and any rendered status text
func (u *Unit) setStatus(s model.Status) {
	u.Status = s
	if u.Kind == KindRow && len(u.Cells) > CellStatus {
		u.Cells[CellStatus] = string(s)
	}
}

// dueText returns the raw due-date text the unit displays
func (u *Unit) dueText() string {
	if u.Kind == KindCard {
		return strings.TrimSpace(u.DueLabel)
	}
	return strings.TrimSpace(cell(u.Cells, CellDue))
}

// Extract reads a task back out of whichever representation holds it.
// Malformed units degrade to empty fields rather than failing.
func Extract(u *Unit) TaskRecord {
	if u == nil {
		return TaskRecord{}
	}
	if u.Kind == KindCard {
		return extractCard(u)
	}
	return extractRow(u)
}

func extractCard(u *Unit) TaskRecord {
	return TaskRecord{
		ID:          u.ID,
		Description: strings.TrimSpace(u.Title),
		Status:      u.Status,
		Priority:    model.Priority(strings.TrimSpace(u.PriorityBadge)),
		DueDate:     normalizeDue(u.DueLabel),
	}
}

func extractRow(u *Unit) TaskRecord {
	return TaskRecord{
		ID:          u.ID,
		Description: strings.TrimSpace(cell(u.Cells, CellDescription)),
		Status:      u.Status,
		Priority:    model.Priority(strings.TrimSpace(cell(u.Cells, CellPriority))),
		DueDate:     normalizeDue(cell(u.Cells, CellDue)),
	}
}

func normalizeDue(s string) string {
	s = strings.TrimSpace(s)
	if s == dueDatePlaceholder {
		return ""
	}
	return s
}

// Cell returns one row slot, or "" when the row is short
func (u *Unit) Cell(i int) string {
	if u == nil {
		return ""
	}
	return cell(u.Cells, i)
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
