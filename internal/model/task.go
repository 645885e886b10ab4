package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status represents the current state of a task
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in board column order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus accepts display names and short aliases ("todo", "progress", "done")
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to do":
		return StatusTodo, true
	case "in progress", "in_progress", "progress", "doing":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	}
	return "", false
}

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts display names and short aliases ("l", "med", "hi")
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "high", "hi", "h":
		return PriorityHigh, true
	}
	return "", false
}

// DateLayout is the wire and display format for due dates
const DateLayout = "2006-01-02"

// TaskID is an opaque, stable task identifier.
// The task service issues integer ids; they travel as JSON numbers when numeric.
type TaskID string

// MarshalJSON encodes numeric ids as JSON numbers and anything else as a string
func (id TaskID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON number or a JSON string
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// Task represents a task as held by the task service
type Task struct {
	ID          TaskID   `json:"id"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"` // YYYY-MM-DD, empty when unset
	Position    *int     `json:"position,omitempty"`
}

// TaskInput is the body of a create request
type TaskInput struct {
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date"`
}

// TaskPatch is the body of an update request; nil fields are left untouched
type TaskPatch struct {
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

// PatchFromInput builds a full-field patch from a form submission
func PatchFromInput(in TaskInput) TaskPatch {
	return TaskPatch{
		Description: &in.Description,
		Status:      &in.Status,
		Priority:    &in.Priority,
		DueDate:     &in.DueDate,
	}
}

// Position is one entry of a batch reorder
type Position struct {
	ID       TaskID `json:"id"`
	Position int    `json:"position"`
}
