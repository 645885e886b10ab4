// Package board keeps the table and kanban projections of the task set in
// sync with each other, with the active filter, with the derived counters and
// with the remote task service.
//
// All Board methods must be called from the Bubble Tea update loop. Network
// work happens inside the returned tea.Cmd closures, which never touch board
// state; their results come back as messages for Handle.
package board

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dori/taskboard/internal/model"
)

// TaskService is the remote store the board persists to
type TaskService interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, in model.TaskInput) (model.TaskID, error)
	Update(ctx context.Context, id model.TaskID, patch model.TaskPatch) error
	Delete(ctx context.Context, id model.TaskID) error
	Reorder(ctx context.Context, positions []model.Position) error
}

// Option configures a Board
type Option func(*Board)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock overrides time.Now for due-date classification
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithContext sets the parent context for service calls
func WithContext(ctx context.Context) Option {
	return func(b *Board) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

// WithAlertHook is called with every blocking alert as it is raised
func WithAlertHook(fn func(string)) Option {
	return func(b *Board) { b.onAlert = fn }
}

// WithDueSoonDays sets the inclusive due-soon window
func WithDueSoonDays(days int) Option {
	return func(b *Board) {
		if days >= 0 {
			b.dueSoonDays = days
		}
	}
}

// WithView sets the initially active view
func WithView(name ViewName) Option {
	return func(b *Board) {
		if name == ViewTable || name == ViewKanban {
			b.active = name
		}
	}
}

// Board is the view-state of the task board
type Board struct {
	svc         TaskService
	ctx         context.Context
	log         *log.Logger
	now         func() time.Time
	onAlert     func(string)
	dueSoonDays int

	table  *Table
	kanban *Kanban
	active ViewName
	loaded bool

	filter  Filter
	summary Summary

	session       Session
	pendingDelete model.TaskID
	alert         string

	reorderSeq  uint64
	transferSeq uint64
}

// New creates an empty board backed by svc
func New(svc TaskService, opts ...Option) *Board {
	b := &Board{
		svc:         svc,
		ctx:         context.Background(),
		log:         log.New(io.Discard),
		now:         time.Now,
		dueSoonDays: DueSoonDays,
		table:       NewTable(),
		kanban:      NewKanban(),
		active:      ViewTable,
		filter:      Filter{Status: StatusAll},
		session:     Session{Draft: DefaultDraft()},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.summary = newSummary(Counts{})
	return b
}

// Refresh fetches the authoritative task list
func (b *Board) Refresh() tea.Cmd {
	svc, ctx := b.svc, b.ctx
	return func() tea.Msg {
		tasks, err := svc.List(ctx)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

// Load rebuilds both projections from authoritative tasks. Filter, search and
// the active view carry over.
func (b *Board) Load(tasks []model.Task) {
	b.table.Load(tasks)
	b.kanban.Load(tasks)
	b.loaded = true
	b.HighlightDueDates()
	b.ApplyVisibility()
	b.Recount()
}

// Loaded reports whether at least one task list has been applied
func (b *Board) Loaded() bool { return b.loaded }

// Table returns the table projection
func (b *Board) Table() *Table { return b.table }

// Kanban returns the kanban projection
func (b *Board) Kanban() *Kanban { return b.kanban }

// Views returns both projections
func (b *Board) Views() []TaskView { return []TaskView{b.table, b.kanban} }

// ActiveName returns the name of the visible view
func (b *Board) ActiveName() ViewName { return b.active }

// Active returns the visible view
func (b *Board) Active() TaskView {
	if b.active == ViewKanban {
		return b.kanban
	}
	return b.table
}

// SwitchView makes another view the visible one
func (b *Board) SwitchView(name ViewName) {
	if name != ViewTable && name != ViewKanban {
		return
	}
	b.active = name
	b.Recount()
}

// Filter returns the current filter state
func (b *Board) Filter() Filter { return b.filter }

// SetStatusFilter changes the status selector; search stays in effect
func (b *Board) SetStatusFilter(s model.Status) {
	if s == "" {
		s = StatusAll
	}
	b.filter.Status = s
	b.ApplyVisibility()
	b.Recount()
}

// SetSearch changes the search term; the status selector stays in effect
func (b *Board) SetSearch(term string) {
	b.filter.Search = term
	b.ApplyVisibility()
	b.Recount()
}

// ApplyVisibility recomputes which units are shown in both views from both
// filter fields together
func (b *Board) ApplyVisibility() {
	f := b.filter
	for _, v := range b.Views() {
		v.SetVisibility(f.Matches)
	}
}

// Summary returns the counters as last written
func (b *Board) Summary() Summary { return b.summary }

// Recount recomputes the counters from the visible units of the active view
func (b *Board) Recount() {
	b.summary = newSummary(CountVisible(b.Active().Units()))
}

// HighlightDueDates reclassifies every unit in both views against now
func (b *Board) HighlightDueDates() {
	now := b.now()
	for _, v := range b.Views() {
		for _, u := range v.Units() {
			u.Due = classifyWithin(u.dueText(), now, b.dueSoonDays)
		}
	}
}

// DueCounts tallies overdue and due-soon tasks over the whole table,
// hidden rows included
func (b *Board) DueCounts() (overdue, soon int) {
	for _, u := range b.table.Units() {
		switch u.Due {
		case DueOverdue:
			overdue++
		case DueSoon:
			soon++
		}
	}
	return overdue, soon
}

// Alert returns the pending blocking message, if any
func (b *Board) Alert() string { return b.alert }

// DismissAlert acknowledges the pending blocking message
func (b *Board) DismissAlert() { b.alert = "" }

func (b *Board) alertf(format string, args ...any) {
	b.alert = fmt.Sprintf(format, args...)
	if b.onAlert != nil {
		b.onAlert(b.alert)
	}
}

// Handle applies a service response and returns any follow-up command
func (b *Board) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.Err != nil {
			b.log.Error("load tasks", "err", msg.Err)
			b.alertf("Error loading tasks: %v", msg.Err)
			return nil
		}
		b.log.Debug("tasks loaded", "count", len(msg.Tasks))
		b.Load(msg.Tasks)
		return nil

	case ReorderPersistedMsg:
		return b.handleReorder(msg)

	case TransferPersistedMsg:
		return b.handleTransfer(msg)

	case MutationDoneMsg:
		return b.handleMutation(msg)
	}
	return nil
}
