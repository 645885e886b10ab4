// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/dori/taskboard/internal/model"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// Call is one recorded request, rendered the way it would go over the wire.
type Call struct {
	Method    string
	Path      string
	Patch     model.TaskPatch
	Input     model.TaskInput
	Positions []model.Position
}

func (c Call) String() string {
	return c.Method + " " + c.Path
}

// FakeService is an in-memory task service for testing. It records every
// request and supports error injection per operation.
type FakeService struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListErr    error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	ReorderErr error
}

// NewFakeService creates a FakeService holding tasks in the given order.
func NewFakeService(tasks ...model.Task) *FakeService {
	fs := &FakeService{nextID: 1}
	for _, t := range tasks {
		fs.tasks = append(fs.tasks, t)
		if n, err := strconv.Atoi(string(t.ID)); err == nil && n >= fs.nextID {
			fs.nextID = n + 1
		}
	}
	return fs
}

// Calls returns the recorded requests in order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallsTo returns the recorded requests with the given method.
func (f *FakeService) CallsTo(method string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded requests.
func (f *FakeService) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Tasks returns the stored tasks in order.
func (f *FakeService) Tasks() []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks)
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// List implements board.TaskService.
func (f *FakeService) List(ctx context.Context) ([]model.Task, error) {
	f.record(Call{Method: "GET", Path: "/tasks"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// Create implements board.TaskService.
func (f *FakeService) Create(ctx context.Context, in model.TaskInput) (model.TaskID, error) {
	f.record(Call{Method: "POST", Path: "/tasks", Input: in})
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := model.TaskID(strconv.Itoa(f.nextID))
	f.nextID++
	f.tasks = append(f.tasks, model.Task{
		ID:          id,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	})
	return id, nil
}

// Update implements board.TaskService.
func (f *FakeService) Update(ctx context.Context, id model.TaskID, patch model.TaskPatch) error {
	f.record(Call{Method: "PUT", Path: "/tasks/" + string(id), Patch: patch})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		return nil
	}
	return fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// Delete implements board.TaskService.
func (f *FakeService) Delete(ctx context.Context, id model.TaskID) error {
	f.record(Call{Method: "DELETE", Path: "/tasks/" + string(id)})
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// Reorder implements board.TaskService.
func (f *FakeService) Reorder(ctx context.Context, positions []model.Position) error {
	f.record(Call{Method: "POST", Path: "/tasks/reorder", Positions: slices.Clone(positions)})
	if f.ReorderErr != nil {
		return f.ReorderErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rank := make(map[model.TaskID]int, len(positions))
	for _, p := range positions {
		rank[p.ID] = p.Position
	}
	slices.SortStableFunc(f.tasks, func(a, b model.Task) int {
		ra, okA := rank[a.ID]
		rb, okB := rank[b.ID]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	for i := range f.tasks {
		if p, ok := rank[f.tasks[i].ID]; ok {
			pos := p
			f.tasks[i].Position = &pos
		}
	}
	return nil
}
