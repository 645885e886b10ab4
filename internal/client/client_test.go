package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dori/taskboard/internal/model"
)

type recorded struct {
	method    string
	path      string
	body      string
	requestID string
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, recorded{
			method:    r.Method,
			path:      r.URL.Path,
			body:      string(body),
			requestID: r.Header.Get(RequestIDHeader),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, &reqs
}

func TestList(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `[
		{"id": 1, "description": "Write report", "status": "Todo", "priority": "High", "due_date": null, "position": 0},
		{"id": 2, "description": "Review PR", "status": "In Progress", "priority": "Medium", "due_date": "2026-10-21", "position": 1}
	]`)

	tasks, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[0].ID != "1" || tasks[0].DueDate != "" || tasks[0].Position == nil || *tasks[0].Position != 0 {
		t.Errorf("task 0 = %+v", tasks[0])
	}
	if tasks[1].Status != model.StatusInProgress || tasks[1].DueDate != "2026-10-21" {
		t.Errorf("task 1 = %+v", tasks[1])
	}

	got := (*reqs)[0]
	if got.method != http.MethodGet || got.path != "/tasks" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	if got.requestID == "" {
		t.Error("missing request id header")
	}
}

func TestCreate(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusCreated, `{"id": 17}`)

	id, err := c.Create(context.Background(), model.TaskInput{
		Description: "Buy milk",
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "17" {
		t.Errorf("id = %q", id)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte((*reqs)[0].body), &body); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if body["description"] != "Buy milk" || body["status"] != "Todo" || body["priority"] != "Medium" {
		t.Errorf("body = %v", body)
	}
}

func TestUpdateSendsOnlyPatchedFields(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"message":"Task updated"}`)
	status := model.StatusDone

	if err := c.Update(context.Background(), "42", model.TaskPatch{Status: &status}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got := (*reqs)[0]
	if got.method != http.MethodPut || got.path != "/tasks/42" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
	if got.body != `{"status":"Done"}` {
		t.Errorf("body = %s", got.body)
	}
}

func TestDelete(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, ``)

	if err := c.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got := (*reqs)[0]
	if got.method != http.MethodDelete || got.path != "/tasks/42" {
		t.Errorf("request = %s %s", got.method, got.path)
	}
}

func TestReorderPayload(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"message":"ok"}`)

	err := c.Reorder(context.Background(), []model.Position{
		{ID: "2", Position: 0},
		{ID: "3", Position: 1},
		{ID: "1", Position: 2},
	})
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	want := `{"tasks":[{"id":2,"position":0},{"id":3,"position":1},{"id":1,"position":2}]}`
	if got := (*reqs)[0].body; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestNotFoundError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNotFound, `{"error":{"code":"not_found","message":"task 9 not found"}}`)

	err := c.Delete(context.Background(), "9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != "not_found" || apiErr.Message != "task 9 not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestPlainTextError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusInternalServerError, "database is locked\n")

	_, err := c.List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "database is locked" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := c.List(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c, err := New("http://localhost:5000", WithHTTPClient(shared), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if shared.Timeout != time.Minute {
		t.Errorf("shared client timeout = %s, want 1m", shared.Timeout)
	}
	if c.http == shared || c.http.Timeout != time.Second {
		t.Errorf("client timeout = %s, want 1s on a copy", c.http.Timeout)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://example.com"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) should fail", raw)
		}
	}
}
