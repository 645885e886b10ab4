package board

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dori/taskboard/internal/model"
)

// ErrEmptyDescription rejects a submit before any request is made
var ErrEmptyDescription = errors.New("please enter a task")

// Validate checks the draft before it is submitted
func (d Draft) Validate() error {
	if d.Input().Description == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Session returns the current modal session
func (b *Board) Session() Session { return b.session }

// OpenCreate starts a create session with the default form, replacing any
// current session
func (b *Board) OpenCreate() {
	b.session = Session{
		Kind:  SessionCreating,
		Draft: DefaultDraft(),
		token: uuid.NewString(),
	}
}

// OpenEdit starts an edit session bound to id, populated from the unit that
// currently represents the task. It replaces any current session.
func (b *Board) OpenEdit(id model.TaskID) bool {
	v := b.Active()
	u := v.Unit(id)
	if u == nil {
		return false
	}
	b.session = Session{
		Kind:  SessionEditing,
		ID:    id,
		Draft: draftFromRecord(v.Extract(u)),
		token: uuid.NewString(),
	}
	return true
}

// SetDraft replaces the form content of the open session
func (b *Board) SetDraft(d Draft) {
	if !b.session.Open() || b.session.Submitting {
		return
	}
	b.session.Draft = d
}

// CancelSession closes the modal without a request
func (b *Board) CancelSession() {
	b.session = Session{Draft: DefaultDraft()}
}

// Submit issues the request the session kind calls for. It returns nil when
// there is no session, a submit is already in flight, or validation fails.
func (b *Board) Submit() tea.Cmd {
	s := b.session
	if !s.Open() || s.Submitting {
		return nil
	}
	if err := s.Draft.Validate(); err != nil {
		b.alertf("Please enter a task!")
		return nil
	}
	b.session.Submitting = true

	in := s.Draft.Input()
	svc, ctx := b.svc, b.ctx
	token := s.token
	if s.Kind == SessionEditing {
		id := s.ID
		patch := model.PatchFromInput(in)
		b.log.Debug("update task", "id", id)
		return func() tea.Msg {
			err := svc.Update(ctx, id, patch)
			return MutationDoneMsg{Op: OpUpdate, ID: id, Token: token, Err: err}
		}
	}
	b.log.Debug("create task")
	return func() tea.Msg {
		id, err := svc.Create(ctx, in)
		return MutationDoneMsg{Op: OpCreate, ID: id, Token: token, Err: err}
	}
}

// RequestDelete asks for confirmation before deleting id
func (b *Board) RequestDelete(id model.TaskID) {
	b.pendingDelete = id
}

// PendingDelete returns the task awaiting delete confirmation
func (b *Board) PendingDelete() model.TaskID { return b.pendingDelete }

// ConfirmDelete answers the pending confirmation. Only a yes issues a request.
func (b *Board) ConfirmDelete(confirmed bool) tea.Cmd {
	id := b.pendingDelete
	b.pendingDelete = ""
	if !confirmed || id == "" {
		return nil
	}
	svc, ctx := b.svc, b.ctx
	b.log.Debug("delete task", "id", id)
	return func() tea.Msg {
		err := svc.Delete(ctx, id)
		return MutationDoneMsg{Op: OpDelete, ID: id, Err: err}
	}
}

// handleMutation closes the session and re-fetches on success; on failure it
// alerts and leaves the form and the board as they were.
func (b *Board) handleMutation(msg MutationDoneMsg) tea.Cmd {
	current := msg.Op != OpDelete && msg.Token == b.session.token
	if msg.Err != nil {
		b.log.Error("task "+msg.Op.String(), "id", msg.ID, "err", msg.Err)
		if msg.Op == OpDelete {
			b.alertf("Error deleting task: %v", msg.Err)
			return nil
		}
		if current {
			b.session.Submitting = false
		}
		b.alertf("Error saving task: %v", msg.Err)
		return nil
	}
	b.log.Info("task "+msg.Op.String(), "id", msg.ID)
	if current {
		b.CancelSession()
	}
	return b.Refresh()
}
