package board

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/testutil"
)

var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Description: "Write report", Status: model.StatusTodo, Priority: model.PriorityHigh},
		{ID: "2", Description: "Review PR", Status: model.StatusInProgress, Priority: model.PriorityMedium, DueDate: "2026-10-21"},
		{ID: "3", Description: "Ship release", Status: model.StatusDone, Priority: model.PriorityLow, DueDate: "2026-10-01"},
		{ID: "4", Description: "Write docs", Status: model.StatusTodo, Priority: model.PriorityLow, DueDate: "2026-12-01"},
	}
}

// newTestBoard creates a board over a fake service and performs the initial load.
func newTestBoard(t *testing.T, tasks ...model.Task) (*Board, *testutil.FakeService) {
	t.Helper()
	if len(tasks) == 0 {
		tasks = sampleTasks()
	}
	svc := testutil.NewFakeService(tasks...)
	b := New(svc, WithClock(func() time.Time { return testNow }))
	drain(t, b, b.Refresh())
	if !b.Loaded() {
		t.Fatalf("board not loaded after refresh")
	}
	svc.Reset()
	return b, svc
}

// drain runs cmd and every follow-up command the board returns, in order,
// the way the Bubble Tea loop would.
func drain(t *testing.T, b *Board, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var msgs []tea.Msg
	for i := 0; cmd != nil; i++ {
		if i > 20 {
			t.Fatalf("command chain did not settle")
		}
		msg := cmd()
		msgs = append(msgs, msg)
		cmd = b.Handle(msg)
	}
	return msgs
}

func ids(units []*Unit) []model.TaskID {
	out := make([]model.TaskID, 0, len(units))
	for _, u := range units {
		out = append(out, u.ID)
	}
	return out
}

func equalIDs(a, b []model.TaskID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadBuildsBothViews(t *testing.T) {
	b, _ := newTestBoard(t)

	if got := b.Table().Order(); !equalIDs(got, []model.TaskID{"1", "2", "3", "4"}) {
		t.Errorf("table order = %v", got)
	}
	if got := ids(b.Kanban().Column(model.StatusTodo)); !equalIDs(got, []model.TaskID{"1", "4"}) {
		t.Errorf("todo column = %v", got)
	}
	if got := ids(b.Kanban().Column(model.StatusInProgress)); !equalIDs(got, []model.TaskID{"2"}) {
		t.Errorf("in progress column = %v", got)
	}
	if got := ids(b.Kanban().Column(model.StatusDone)); !equalIDs(got, []model.TaskID{"3"}) {
		t.Errorf("done column = %v", got)
	}

	s := b.Summary()
	if s.Panel != (Counts{Total: 4, Todo: 2, InProgress: 1, Done: 1}) {
		t.Errorf("summary = %+v", s.Panel)
	}
	if s.Empty {
		t.Error("summary should not be empty")
	}
}

func TestLoadErrorRaisesAlert(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = testutil.ErrNotFound
	b := New(svc)

	drain(t, b, b.Refresh())

	if b.Loaded() {
		t.Error("board should not be marked loaded")
	}
	if b.Alert() == "" {
		t.Error("expected an alert")
	}
	b.DismissAlert()
	if b.Alert() != "" {
		t.Error("alert not dismissed")
	}
}

func TestSwitchViewRecounts(t *testing.T) {
	b, _ := newTestBoard(t)

	if got := b.Summary().Panel.Total; got != 4 {
		t.Fatalf("table total = %d, want 4", got)
	}

	// Counts follow whichever view is active.
	b.Kanban().Unit("1").Hidden = true
	b.SwitchView(ViewKanban)
	if b.ActiveName() != ViewKanban {
		t.Fatalf("active = %s", b.ActiveName())
	}
	if got := b.Summary().Panel; got != (Counts{Total: 3, Todo: 1, InProgress: 1, Done: 1}) {
		t.Errorf("kanban summary = %+v", got)
	}

	b.SwitchView("bogus")
	if b.ActiveName() != ViewKanban {
		t.Errorf("unknown view name changed active view to %s", b.ActiveName())
	}
}

func TestUnknownStatusSkippedByBothViews(t *testing.T) {
	b, _ := newTestBoard(t, append(sampleTasks(), model.Task{ID: "9", Description: "Orphan", Status: "Blocked"})...)

	if b.Table().Unit("9") != nil || b.Kanban().Unit("9") != nil {
		t.Error("a task with an unknown status should not be shown")
	}
	for _, name := range []ViewName{ViewTable, ViewKanban} {
		b.SwitchView(name)
		c := b.Summary().Panel
		if c.Total != 4 || c.Total != c.Todo+c.InProgress+c.Done {
			t.Errorf("%s summary = %+v", name, c)
		}
	}
}

func TestParseViewName(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewName
		wantErr bool
	}{
		{"table", ViewTable, false},
		{"List", ViewTable, false},
		{" kanban ", ViewKanban, false},
		{"board", ViewKanban, false},
		{"calendar", "", true},
	}
	for _, tt := range tests {
		got, err := ParseViewName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewName(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseViewName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
