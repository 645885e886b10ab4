package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dori/taskboard/internal/db"
	"github.com/dori/taskboard/internal/model"
)

type createResponse struct {
	ID int64 `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type reorderRequest struct {
	Tasks []model.Position `json:"tasks"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	TaskCount int    `json:"task_count"`
	Error     string `json:"error,omitempty"`
}

// handleHealth serves GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.CountTasks(r.Context())
	if err != nil {
		s.log.Error("health check failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, healthResponse{Status: "unhealthy", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Database: "connected", TaskCount: n})
}

// handleListTasks serves GET /tasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context())
	if err != nil {
		s.log.Error("list tasks", "err", err)
		writeErrorFrom(w, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask serves POST /tasks
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in model.TaskInput
	if err := decodeJSONBody(w, r, &in); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if err := validateInput(&in); err != nil {
		writeErrorFrom(w, err)
		return
	}

	id, err := s.store.CreateTask(r.Context(), in)
	if err != nil {
		s.log.Error("create task", "err", err)
		writeErrorFrom(w, err)
		return
	}
	s.log.Debug("task created", "id", id)
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

// handleUpdateTask serves PUT /tasks/{id}
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var patch model.TaskPatch
	if err := decodeJSONBody(w, r, &patch); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if err := validatePatch(&patch); err != nil {
		writeErrorFrom(w, err)
		return
	}

	if err := s.store.UpdateTask(r.Context(), id, patch); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task updated"})
}

// handleDeleteTask serves DELETE /tasks/{id}
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTask(r.Context(), id); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task deleted"})
}

// handleReorderTasks serves POST /tasks/reorder
func (s *Server) handleReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	for i, p := range req.Tasks {
		if _, err := strconv.ParseInt(string(p.ID), 10, 64); err != nil {
			writeErrorFrom(w, fmt.Errorf("tasks[%d].id %q is not an integer: %w", i, p.ID, ErrInvalidRequest))
			return
		}
		if p.Position < 0 {
			writeErrorFrom(w, fmt.Errorf("tasks[%d].position must be >= 0: %w", i, ErrInvalidRequest))
			return
		}
	}

	if err := s.store.ReorderTasks(r.Context(), req.Tasks); err != nil {
		s.log.Error("reorder tasks", "err", err)
		writeErrorFrom(w, err)
		return
	}
	s.log.Debug("tasks reordered", "count", len(req.Tasks))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Tasks reordered"})
}

// taskID parses the {id} URL parameter. Non-integer ids cannot exist, so
// they answer 404 like any other missing task.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeErrorFrom(w, fmt.Errorf("task %q: %w", raw, db.ErrNotFound))
		return 0, false
	}
	return id, true
}

func validateInput(in *model.TaskInput) error {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return fmt.Errorf("description is required: %w", ErrInvalidRequest)
	}
	if in.Status == "" {
		in.Status = model.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	return validateEnums(&in.Status, &in.Priority)
}

func validatePatch(p *model.TaskPatch) error {
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		if d == "" {
			return fmt.Errorf("description cannot be empty: %w", ErrInvalidRequest)
		}
		p.Description = &d
	}
	return validateEnums(p.Status, p.Priority)
}

func validateEnums(status *model.Status, priority *model.Priority) error {
	if status != nil && !status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *status, ErrInvalidRequest)
	}
	if priority != nil && !priority.Valid() {
		return fmt.Errorf("unknown priority %q: %w", *priority, ErrInvalidRequest)
	}
	return nil
}
