package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dori/taskboard/internal/model"
)

const taskColumns = `id, description, status, priority, due_date, position`

// ListTasks returns every task in board order: position ascending with
// unpositioned tasks last, then id
func (db *DB) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY position IS NULL, position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// GetTask returns a single task by id
func (db *DB) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	row := db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return t, err
}

// CountTasks returns the number of stored tasks
func (db *DB) CountTasks(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

// CreateTask inserts a task at the end of the board and returns its id.
// Missing status and priority default to Todo and Medium.
func (db *DB) CreateTask(ctx context.Context, in model.TaskInput) (int64, error) {
	if in.Status == "" {
		in.Status = model.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	now := time.Now().UTC()

	res, err := db.ExecContext(ctx, `
		INSERT INTO tasks (description, status, priority, due_date, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM tasks), ?, ?)
	`, in.Description, in.Status, in.Priority, nullableDate(in.DueDate), now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTask applies the non-nil fields of patch. An empty due date clears it.
func (db *DB) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) error {
	var (
		sets []string
		args []any
	)
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, nullableDate(*patch.DueDate))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// ReorderTasks writes every position in one transaction. Ids that do not
// exist are skipped.
func (db *DB) ReorderTasks(ctx context.Context, positions []model.Position) error {
	now := time.Now().UTC()
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE tasks SET position = ?, updated_at = ? WHERE id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range positions {
			id, err := strconv.ParseInt(string(p.ID), 10, 64)
			if err != nil {
				return fmt.Errorf("task id %q: %w", p.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, p.Position, now, id); err != nil {
				return fmt.Errorf("position task %d: %w", id, err)
			}
		}
		return nil
	})
}

// Helper functions

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

// nullableDate stores valid YYYY-MM-DD text and NULL for anything else
func nullableDate(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return nil
	}
	return s
}

func scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row *sql.Row) (*model.Task, error) {
	return scanTaskRow(row)
}

func scanTaskRow(s scanner) (*model.Task, error) {
	var (
		t        model.Task
		id       int64
		dueDate  sql.NullString
		position sql.NullInt64
	)
	if err := s.Scan(&id, &t.Description, &t.Status, &t.Priority, &dueDate, &position); err != nil {
		return nil, err
	}

	t.ID = model.TaskID(strconv.FormatInt(id, 10))
	if dueDate.Valid {
		t.DueDate = dueDate.String
	}
	if position.Valid {
		p := int(position.Int64)
		t.Position = &p
	}
	return &t, nil
}
