package board

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskboard/internal/model"
)

// MoveRow completes a table drag: the row moves past delta visible neighbours
// and the whole order is persisted as one batch. The move is applied locally
// before the request resolves. Returns nil when nothing moved.
func (b *Board) MoveRow(id model.TaskID, delta int) tea.Cmd {
	if !b.table.Move(id, delta) {
		return nil
	}
	return b.persistOrder()
}

// persistOrder snapshots the full table order. Every snapshot is a complete
// permutation of 0..n-1, so overlapping requests can never share a position.
func (b *Board) persistOrder() tea.Cmd {
	b.reorderSeq++
	seq := b.reorderSeq
	positions := b.table.Positions()
	svc, ctx := b.svc, b.ctx
	b.log.Debug("persist order", "seq", seq, "tasks", len(positions))
	return func() tea.Msg {
		err := svc.Reorder(ctx, positions)
		return ReorderPersistedMsg{Seq: seq, Positions: positions, Err: err}
	}
}

// TransferCard completes a kanban drag into the column delta steps away
func (b *Board) TransferCard(id model.TaskID, delta int) tea.Cmd {
	from, ok := b.kanban.ColumnOf(id)
	if !ok {
		return nil
	}
	dest := ColumnIndex(from) + delta
	if dest < 0 || dest >= len(model.Statuses) {
		return nil
	}
	return b.TransferTo(id, model.Statuses[dest])
}

// TransferTo moves a card into the column owning status and persists the
// status of that one task. Intra-column order is not persisted.
func (b *Board) TransferTo(id model.TaskID, status model.Status) tea.Cmd {
	if !b.kanban.Transfer(id, status) {
		return nil
	}
	if row := b.table.Unit(id); row != nil {
		row.setStatus(status)
	}
	b.ApplyVisibility()
	b.Recount()

	b.transferSeq++
	seq := b.transferSeq
	svc, ctx := b.svc, b.ctx
	patch := model.TaskPatch{Status: &status}
	b.log.Debug("persist status", "seq", seq, "id", id, "status", status)
	return func() tea.Msg {
		err := svc.Update(ctx, id, patch)
		return TransferPersistedMsg{Seq: seq, ID: id, Status: status, Err: err}
	}
}

// ShiftCard moves a card within its column. Local only.
func (b *Board) ShiftCard(id model.TaskID, delta int) bool {
	return b.kanban.Shift(id, delta)
}

// handleReorder notifies on failure and reconciles by re-fetching, unless a
// newer order snapshot is already on its way.
func (b *Board) handleReorder(msg ReorderPersistedMsg) tea.Cmd {
	if msg.Err == nil {
		b.log.Debug("task order updated", "seq", msg.Seq)
		return nil
	}
	b.log.Error("reorder tasks", "seq", msg.Seq, "err", msg.Err)
	b.alertf("Error updating task order: %v", msg.Err)
	if msg.Seq != b.reorderSeq {
		return nil
	}
	return b.Refresh()
}

// handleTransfer recounts on success. Failures are logged, not alerted, and
// reconciled by re-fetching once no newer transfer is in flight.
func (b *Board) handleTransfer(msg TransferPersistedMsg) tea.Cmd {
	if msg.Err == nil {
		b.log.Debug("task status updated", "id", msg.ID, "status", msg.Status)
		b.Recount()
		return nil
	}
	b.log.Error("update task status", "seq", msg.Seq, "id", msg.ID, "status", msg.Status, "err", msg.Err)
	if msg.Seq != b.transferSeq {
		return nil
	}
	return b.Refresh()
}
