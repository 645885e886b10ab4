package board

import (
	"github.com/dori/taskboard/internal/model"
)

// Kanban is the projection grouped into one column per status. A column owns
// its status value; a card's status attribute always equals its column's.
type Kanban struct {
	columns [][]*Unit
}

// NewKanban creates an empty kanban view with one column per status
func NewKanban() *Kanban {
	return &Kanban{columns: make([][]*Unit, len(model.Statuses))}
}

func (k *Kanban) Name() ViewName { return ViewKanban }

// Load distributes tasks into columns keeping their relative order.
// Tasks with an unknown status have no column and are not shown.
func (k *Kanban) Load(tasks []model.Task) {
	columns := make([][]*Unit, len(model.Statuses))
	for _, task := range tasks {
		col := ColumnIndex(task.Status)
		if col < 0 {
			continue
		}
		columns[col] = append(columns[col], newCard(task))
	}
	k.columns = columns
}

func (k *Kanban) Units() []*Unit {
	var out []*Unit
	for _, col := range k.columns {
		out = append(out, col...)
	}
	return out
}

func (k *Kanban) Unit(id model.TaskID) *Unit {
	col, i := k.locate(id)
	if col < 0 {
		return nil
	}
	return k.columns[col][i]
}

func (k *Kanban) Extract(u *Unit) TaskRecord { return extractCard(u) }

func (k *Kanban) SetVisibility(visible func(*Unit) bool) {
	for _, col := range k.columns {
		setVisibility(col, visible)
	}
}

// Column returns the cards of one status column in order
func (k *Kanban) Column(s model.Status) []*Unit {
	col := ColumnIndex(s)
	if col < 0 {
		return nil
	}
	return k.columns[col]
}

// ColumnOf returns the status of the column holding a card
func (k *Kanban) ColumnOf(id model.TaskID) (model.Status, bool) {
	col, _ := k.locate(id)
	if col < 0 {
		return "", false
	}
	return model.Statuses[col], true
}

// Transfer moves a card to the end of the destination column and rewrites its
// status attribute. It reports false when the card is missing, the status has
// no column, or the card is already there.
func (k *Kanban) Transfer(id model.TaskID, to model.Status) bool {
	from, i := k.locate(id)
	dest := ColumnIndex(to)
	if from < 0 || dest < 0 || from == dest {
		return false
	}
	u := k.columns[from][i]
	k.columns[from] = append(k.columns[from][:i:i], k.columns[from][i+1:]...)
	u.setStatus(to)
	k.columns[dest] = append(k.columns[dest], u)
	return true
}

// Shift moves a card within its column past delta visible neighbours
func (k *Kanban) Shift(id model.TaskID, delta int) bool {
	col, i := k.locate(id)
	if col < 0 {
		return false
	}
	cards, moved := moveAmongVisible(k.columns[col], i, delta)
	k.columns[col] = cards
	return moved
}

func (k *Kanban) locate(id model.TaskID) (int, int) {
	for c, col := range k.columns {
		for i, u := range col {
			if u.ID == id {
				return c, i
			}
		}
	}
	return -1, -1
}

// ColumnIndex returns the column position for a status, or -1
func ColumnIndex(s model.Status) int {
	for i, st := range model.Statuses {
		if st == s {
			return i
		}
	}
	return -1
}
