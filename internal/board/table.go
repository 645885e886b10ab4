package board

import (
	"github.com/dori/taskboard/internal/model"
)

// Table is the flat, single-container projection. Row order is the task
// position: contiguous from 0 and unique per task.
type Table struct {
	rows []*Unit
}

// NewTable creates an empty table view
func NewTable() *Table {
	return &Table{}
}

func (t *Table) Name() ViewName { return ViewTable }

// Load builds one row per task. Tasks with an unknown status are skipped so
// the table shows the same set as the kanban.
func (t *Table) Load(tasks []model.Task) {
	rows := make([]*Unit, 0, len(tasks))
	for _, task := range tasks {
		if !task.Status.Valid() {
			continue
		}
		rows = append(rows, newRow(task))
	}
	t.rows = rows
}

func (t *Table) Units() []*Unit { return t.rows }

func (t *Table) Unit(id model.TaskID) *Unit {
	if i := t.index(id); i >= 0 {
		return t.rows[i]
	}
	return nil
}

func (t *Table) Extract(u *Unit) TaskRecord { return extractRow(u) }

func (t *Table) SetVisibility(visible func(*Unit) bool) { setVisibility(t.rows, visible) }

// Move drags a row past delta visible neighbours (negative is up).
// It reports whether the order changed.
func (t *Table) Move(id model.TaskID, delta int) bool {
	rows, moved := moveAmongVisible(t.rows, t.index(id), delta)
	t.rows = rows
	return moved
}

// Order returns task ids in current row order
func (t *Table) Order() []model.TaskID {
	ids := make([]model.TaskID, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID
	}
	return ids
}

// Positions snapshots the current order as a complete batch reorder payload
func (t *Table) Positions() []model.Position {
	out := make([]model.Position, len(t.rows))
	for i, r := range t.rows {
		out[i] = model.Position{ID: r.ID, Position: i}
	}
	return out
}

func (t *Table) index(id model.TaskID) int {
	for i, r := range t.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
