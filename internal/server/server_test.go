package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dori/taskboard/internal/client"
	"github.com/dori/taskboard/internal/db"
	"github.com/dori/taskboard/internal/model"
)

func newTestService(t *testing.T) (*httptest.Server, *db.DB) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(New(store).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", body, err)
	}
	return env.Error.Code
}

func TestCreateAndList(t *testing.T) {
	srv, _ := newTestService(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"description":"Buy milk","due_date":"2026-10-21"}`)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", status, body)
	}
	if strings.TrimSpace(body) != `{"id":1}` {
		t.Errorf("create body = %s", body)
	}

	status, body = doJSON(t, http.MethodGet, srv.URL+"/tasks", "")
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(body), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	got := tasks[0]
	if got.ID != "1" || got.Status != model.StatusTodo || got.Priority != model.PriorityMedium || got.DueDate != "2026-10-21" {
		t.Errorf("task = %+v", got)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	srv, _ := newTestService(t)
	_, body := doJSON(t, http.MethodGet, srv.URL+"/tasks", "")
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("body = %s", body)
	}
}

func TestCreateValidation(t *testing.T) {
	srv, _ := newTestService(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"blank description", `{"description":"   "}`},
		{"bad status", `{"description":"x","status":"Blocked"}`},
		{"bad priority", `{"description":"x","priority":"Urgent"}`},
		{"unknown field", `{"description":"x","colour":"red"}`},
		{"not json", `description=x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/tasks", tt.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s", status, body)
			}
			if code := errorCode(t, body); code != "invalid_request" {
				t.Errorf("code = %q", code)
			}
		})
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	srv, _ := newTestService(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPut, "/tasks/42", `{"status":"Done"}`},
		{http.MethodDelete, "/tasks/42", ""},
		{http.MethodDelete, "/tasks/abc", ""},
	} {
		status, body := doJSON(t, tc.method, srv.URL+tc.path, tc.body)
		if status != http.StatusNotFound {
			t.Errorf("%s %s status = %d", tc.method, tc.path, status)
			continue
		}
		if code := errorCode(t, body); code != "not_found" {
			t.Errorf("%s %s code = %q", tc.method, tc.path, code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestService(t)
	status, body := doJSON(t, http.MethodGet, srv.URL+"/nope", "")
	if status != http.StatusNotFound || errorCode(t, body) != "not_found" {
		t.Errorf("status = %d body = %s", status, body)
	}
	status, _ = doJSON(t, http.MethodPatch, srv.URL+"/tasks", "")
	if status != http.StatusMethodNotAllowed {
		t.Errorf("PATCH status = %d", status)
	}
}

func TestHealth(t *testing.T) {
	srv, store := newTestService(t)
	if _, err := store.CreateTask(context.Background(), model.TaskInput{Description: "x"}); err != nil {
		t.Fatal(err)
	}

	status, body := doJSON(t, http.MethodGet, srv.URL+"/health", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var h healthResponse
	if err := json.Unmarshal([]byte(body), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.Database != "connected" || h.TaskCount != 1 {
		t.Errorf("health = %+v", h)
	}

	store.Close()
	status, body = doJSON(t, http.MethodGet, srv.URL+"/health", "")
	if status != http.StatusInternalServerError || !strings.Contains(body, "unhealthy") {
		t.Errorf("closed db: status = %d body = %s", status, body)
	}
}

func TestRequestLogCarriesRequestID(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	var buf bytes.Buffer
	srv := httptest.NewServer(New(store, WithLogger(log.New(&buf))).Handler())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/tasks", nil)
	req.Header.Set(client.RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	srv.Close()

	out := buf.String()
	if !strings.Contains(out, "abc-123") || !strings.Contains(out, "/tasks") {
		t.Errorf("log output = %q", out)
	}
}

// TestClientRoundTrip drives the service through the board's client.
func TestClientRoundTrip(t *testing.T) {
	srv, _ := newTestService(t)
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var ids []model.TaskID
	for _, d := range []string{"A", "B", "C"} {
		id, err := c.Create(ctx, model.TaskInput{Description: d, Status: model.StatusTodo, Priority: model.PriorityLow})
		if err != nil {
			t.Fatalf("Create(%s): %v", d, err)
		}
		ids = append(ids, id)
	}

	err = c.Reorder(ctx, []model.Position{
		{ID: ids[1], Position: 0},
		{ID: ids[2], Position: 1},
		{ID: ids[0], Position: 2},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	done := model.StatusDone
	if err := c.Update(ctx, ids[0], model.TaskPatch{Status: &done}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := c.Delete(ctx, ids[2]); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Description != "B" || tasks[1].Description != "A" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if tasks[1].Status != model.StatusDone || tasks[1].Priority != model.PriorityLow {
		t.Errorf("A = %+v", tasks[1])
	}

	if err := c.Delete(ctx, ids[2]); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if err := c.Health(ctx); err != nil {
		t.Errorf("Health: %v", err)
	}
}
