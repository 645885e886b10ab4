package board

import (
	"fmt"
	"strings"

	"github.com/dori/taskboard/internal/model"
)

// ViewName identifies one of the two projections of the task set
type ViewName string

const (
	ViewTable  ViewName = "table"
	ViewKanban ViewName = "kanban"
)

// String returns the display name for a view
func (v ViewName) String() string {
	switch v {
	case ViewTable:
		return "Table"
	case ViewKanban:
		return "Kanban"
	default:
		return "Unknown"
	}
}

// ParseViewName accepts "table" (or "list") and "kanban" (or "board")
func ParseViewName(s string) (ViewName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "list":
		return ViewTable, nil
	case "kanban", "board":
		return ViewKanban, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// TaskView is one visual projection of the task set
type TaskView interface {
	Name() ViewName

	// Load rebuilds the projection from authoritative tasks, in the given order.
	Load(tasks []model.Task)

	// Units returns every unit in render order, hidden ones included.
	Units() []*Unit

	// Unit looks up the unit for a task, or nil.
	Unit(id model.TaskID) *Unit

	// Extract reads task fields out of one of this view's units.
	Extract(u *Unit) TaskRecord

	// SetVisibility shows exactly the units for which visible returns true.
	SetVisibility(visible func(*Unit) bool)
}

// VisibleUnits returns the shown units of a view in render order
func VisibleUnits(v TaskView) []*Unit {
	var out []*Unit
	for _, u := range v.Units() {
		if !u.Hidden {
			out = append(out, u)
		}
	}
	return out
}

func setVisibility(units []*Unit, visible func(*Unit) bool) {
	for _, u := range units {
		u.Hidden = !visible(u)
	}
}

// moveAmongVisible moves the unit at index i past |delta| visible neighbours.
// Hidden units keep their relative order. Returns the new slice and whether
// anything moved.
func moveAmongVisible(units []*Unit, i, delta int) ([]*Unit, bool) {
	if i < 0 || i >= len(units) || delta == 0 {
		return units, false
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	target := i
	remaining := delta * step
	for j := i + step; j >= 0 && j < len(units) && remaining > 0; j += step {
		if units[j].Hidden {
			continue
		}
		target = j
		remaining--
	}
	if target == i {
		return units, false
	}
	u := units[i]
	if target > i {
		copy(units[i:target], units[i+1:target+1])
	} else {
		copy(units[target+1:i+1], units[target:i])
	}
	units[target] = u
	return units, true
}
