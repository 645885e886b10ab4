package board

import (
	"strings"

	"github.com/dori/taskboard/internal/model"
)

// SessionKind is the state of the modal editing session
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionCreating
	SessionEditing
)

func (k SessionKind) String() string {
	switch k {
	case SessionCreating:
		return "Add New Task"
	case SessionEditing:
		return "Edit Task"
	default:
		return ""
	}
}

// Draft is the modal form content
type Draft struct {
	Description string
	Status      model.Status
	Priority    model.Priority
	DueDate     string
}

// DefaultDraft is the empty form: status Todo, priority Medium
func DefaultDraft() Draft {
	return Draft{
		Status:   model.StatusTodo,
		Priority: model.PriorityMedium,
	}
}

func draftFromRecord(r TaskRecord) Draft {
	d := Draft{
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
	if !d.Status.Valid() {
		d.Status = model.StatusTodo
	}
	if !d.Priority.Valid() {
		d.Priority = model.PriorityMedium
	}
	return d
}

// Input converts the draft into a request body with a trimmed description
func (d Draft) Input() model.TaskInput {
	return model.TaskInput{
		Description: strings.TrimSpace(d.Description),
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     strings.TrimSpace(d.DueDate),
	}
}

// Session is the single modal editing session. Opening a new session replaces
// the current one; Kind alone decides which request a submit issues.
type Session struct {
	Kind       SessionKind
	ID         model.TaskID // bound task when Kind is SessionEditing
	Draft      Draft
	Submitting bool

	token string
}

// Open reports whether a session is active
func (s Session) Open() bool {
	return s.Kind != SessionNone
}
