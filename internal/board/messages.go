package board

import (
	"github.com/dori/taskboard/internal/model"
)

// TasksLoadedMsg carries an authoritative task list from the service
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

// ReorderPersistedMsg reports the outcome of a batch reorder
type ReorderPersistedMsg struct {
	Seq       uint64
	Positions []model.Position
	Err       error
}

// TransferPersistedMsg reports the outcome of a kanban status change
type TransferPersistedMsg struct {
	Seq    uint64
	ID     model.TaskID
	Status model.Status
	Err    error
}

// MutationOp names a coordinator request
type MutationOp int

const (
	OpCreate MutationOp = iota
	OpUpdate
	OpDelete
)

func (o MutationOp) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MutationDoneMsg reports the outcome of a create, update or delete
type MutationDoneMsg struct {
	Op    MutationOp
	ID    model.TaskID
	Token string
	Err   error
}
