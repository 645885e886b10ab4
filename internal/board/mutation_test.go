package board

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/dori/taskboard/internal/model"
)

func TestSubmitEmptyDescriptionSendsNothing(t *testing.T) {
	b, svc := newTestBoard(t)
	b.OpenCreate()
	d := DefaultDraft()
	d.Description = "   "
	b.SetDraft(d)

	if cmd := b.Submit(); cmd != nil {
		t.Fatal("expected no request")
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("calls = %v", svc.Calls())
	}
	if b.Alert() != "Please enter a task!" {
		t.Errorf("alert = %q", b.Alert())
	}
	if !b.Session().Open() {
		t.Error("modal should stay open")
	}
}

func TestCreateTask(t *testing.T) {
	b, svc := newTestBoard(t)
	b.OpenCreate()
	if b.Session().Kind.String() != "Add New Task" {
		t.Errorf("title = %q", b.Session().Kind)
	}
	d := b.Session().Draft
	d.Description = "  Buy milk "
	b.SetDraft(d)

	drain(t, b, b.Submit())

	calls := svc.Calls()
	if len(calls) != 2 || calls[0].String() != "POST /tasks" || calls[1].String() != "GET /tasks" {
		t.Fatalf("calls = %v", calls)
	}
	in := calls[0].Input
	if in.Description != "Buy milk" || in.Status != model.StatusTodo || in.Priority != model.PriorityMedium {
		t.Errorf("input = %+v", in)
	}
	if b.Session().Open() {
		t.Error("modal should close after a successful save")
	}
	if b.Table().Unit("5") == nil {
		t.Error("new task missing after reload")
	}
}

func TestSubmitTwiceSendsOnce(t *testing.T) {
	b, svc := newTestBoard(t)
	b.OpenCreate()
	d := b.Session().Draft
	d.Description = "once"
	b.SetDraft(d)

	cmd := b.Submit()
	if again := b.Submit(); again != nil {
		t.Error("second submit while in flight should be ignored")
	}
	drain(t, b, cmd)

	if n := len(svc.CallsTo("POST")); n != 1 {
		t.Errorf("POST count = %d", n)
	}
}

func TestSessionReplacement(t *testing.T) {
	t.Run("edit then create", func(t *testing.T) {
		b, svc := newTestBoard(t)
		if !b.OpenEdit("2") {
			t.Fatal("OpenEdit failed")
		}
		b.OpenCreate()
		d := b.Session().Draft
		if d.Description != "" || d.Status != model.StatusTodo {
			t.Errorf("create draft = %+v", d)
		}
		d.Description = "new"
		b.SetDraft(d)
		drain(t, b, b.Submit())

		if n := len(svc.CallsTo("PUT")); n != 0 {
			t.Errorf("unexpected PUT: %v", svc.Calls())
		}
		if n := len(svc.CallsTo("POST")); n != 1 {
			t.Errorf("POST count = %d", n)
		}
	})

	t.Run("create then edit", func(t *testing.T) {
		b, svc := newTestBoard(t)
		b.OpenCreate()
		b.OpenEdit("2")
		if b.Session().Kind.String() != "Edit Task" {
			t.Errorf("title = %q", b.Session().Kind)
		}
		drain(t, b, b.Submit())

		calls := svc.Calls()
		if len(calls) != 2 || calls[0].String() != "PUT /tasks/2" {
			t.Fatalf("calls = %v", calls)
		}
		if n := len(svc.CallsTo("POST")); n != 0 {
			t.Errorf("unexpected POST: %v", calls)
		}
	})
}

func TestOpenEditPopulatesFromActiveView(t *testing.T) {
	for _, view := range []ViewName{ViewTable, ViewKanban} {
		b, _ := newTestBoard(t)
		b.SwitchView(view)

		if !b.OpenEdit("2") {
			t.Fatalf("%s: OpenEdit failed", view)
		}
		want := Draft{Description: "Review PR", Status: model.StatusInProgress, Priority: model.PriorityMedium, DueDate: "2026-10-21"}
		if got := b.Session().Draft; got != want {
			t.Errorf("%s: draft = %+v, want %+v", view, got, want)
		}

		b.OpenEdit("1")
		if got := b.Session().Draft.DueDate; got != "" {
			t.Errorf("%s: placeholder leaked into draft: %q", view, got)
		}
	}

	b, _ := newTestBoard(t)
	if b.OpenEdit("missing") {
		t.Error("OpenEdit of unknown id should fail")
	}
}

func TestEditSendsFullPatch(t *testing.T) {
	b, svc := newTestBoard(t)
	b.OpenEdit("2")
	d := b.Session().Draft
	d.Priority = model.PriorityHigh
	b.SetDraft(d)

	drain(t, b, b.Submit())

	p := svc.CallsTo("PUT")[0].Patch
	if p.Description == nil || *p.Description != "Review PR" {
		t.Errorf("description = %v", p.Description)
	}
	if p.Priority == nil || *p.Priority != model.PriorityHigh {
		t.Errorf("priority = %v", p.Priority)
	}
	if got := svc.Tasks()[1].Priority; got != model.PriorityHigh {
		t.Errorf("stored priority = %q", got)
	}
}

func TestStaleResponseKeepsNewSession(t *testing.T) {
	b, _ := newTestBoard(t)
	b.OpenCreate()
	d := b.Session().Draft
	d.Description = "first"
	b.SetDraft(d)
	cmd := b.Submit()

	b.OpenEdit("2")
	drain(t, b, cmd)

	s := b.Session()
	if s.Kind != SessionEditing || s.ID != "2" || s.Submitting {
		t.Errorf("session = %+v", s)
	}
}

func TestSaveFailureKeepsModal(t *testing.T) {
	b, svc := newTestBoard(t)
	svc.CreateErr = errors.New("server down")
	b.OpenCreate()
	d := b.Session().Draft
	d.Description = "keep me"
	b.SetDraft(d)

	drain(t, b, b.Submit())

	if !strings.HasPrefix(b.Alert(), "Error saving task") {
		t.Errorf("alert = %q", b.Alert())
	}
	s := b.Session()
	if !s.Open() || s.Submitting || s.Draft.Description != "keep me" {
		t.Errorf("session = %+v", s)
	}
	if n := len(svc.CallsTo("GET")); n != 0 {
		t.Errorf("failed save should not reload, calls = %v", svc.Calls())
	}
}

func TestCancelSession(t *testing.T) {
	b, svc := newTestBoard(t)
	b.OpenEdit("2")
	b.CancelSession()

	if b.Session().Open() {
		t.Error("session still open")
	}
	if b.Submit() != nil || len(svc.Calls()) != 0 {
		t.Error("submit without a session should do nothing")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	tasks := append(sampleTasks(), model.Task{ID: "42", Description: "Answer", Status: model.StatusTodo, Priority: model.PriorityLow})

	t.Run("declined", func(t *testing.T) {
		b, svc := newTestBoard(t, tasks...)
		b.RequestDelete("42")
		if b.PendingDelete() != "42" {
			t.Fatalf("pending = %q", b.PendingDelete())
		}
		if cmd := b.ConfirmDelete(false); cmd != nil {
			t.Error("declined delete returned a command")
		}
		if b.PendingDelete() != "" || len(svc.Calls()) != 0 {
			t.Errorf("pending = %q, calls = %v", b.PendingDelete(), svc.Calls())
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		b, svc := newTestBoard(t, tasks...)
		b.RequestDelete("42")
		drain(t, b, b.ConfirmDelete(true))

		var got []string
		for _, c := range svc.Calls() {
			got = append(got, c.String())
		}
		if !slices.Equal(got, []string{"DELETE /tasks/42", "GET /tasks"}) {
			t.Errorf("calls = %v", got)
		}
		if b.Table().Unit("42") != nil || b.Kanban().Unit("42") != nil {
			t.Error("deleted task still shown")
		}
	})

	t.Run("failed", func(t *testing.T) {
		b, svc := newTestBoard(t, tasks...)
		svc.DeleteErr = errors.New("nope")
		b.RequestDelete("42")
		drain(t, b, b.ConfirmDelete(true))

		if !strings.HasPrefix(b.Alert(), "Error deleting task") {
			t.Errorf("alert = %q", b.Alert())
		}
		if b.Table().Unit("42") == nil {
			t.Error("task removed despite failure")
		}
	})
}

func TestAlertHook(t *testing.T) {
	var got []string
	b, _ := newTestBoard(t)
	b.onAlert = func(s string) { got = append(got, s) }

	b.OpenCreate()
	b.Submit()

	if len(got) != 1 || got[0] != "Please enter a task!" {
		t.Errorf("hook saw %v", got)
	}
}
