package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/model"
	"github.com/dori/taskboard/internal/notify"
	"github.com/dori/taskboard/internal/ui/theme"
	"github.com/dori/taskboard/internal/ui/views"
)

// Option configures the root model
type Option func(*RootModel)

// WithNotifier mirrors alerts and the due-date summary to the desktop
func WithNotifier(n *notify.Notifier) Option {
	return func(m *RootModel) { m.notifier = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *RootModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides time.Now for due-date parsing in the form
func WithClock(now func() time.Time) Option {
	return func(m *RootModel) {
		if now != nil {
			m.now = now
		}
	}
}

// RootModel is the main application model. It owns the cursor, the search
// box and the form; everything about tasks lives in the board.
type RootModel struct {
	board    *board.Board
	notifier *notify.Notifier
	log      *log.Logger
	now      func() time.Time

	keys   KeyMap
	help   help.Model
	width  int
	height int

	searching   bool
	search      textinput.Model
	form        taskForm
	helpVisible bool

	// Cursors are task ids so they survive reloads and reorders. The index
	// is where to land when the task under the cursor disappears.
	tableCursor  model.TaskID
	tableIndex   int
	kanbanColumn int
	kanbanCursor model.TaskID
	kanbanIndex  int

	notifiedAlert string
	summarySent   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model over b
func NewRootModel(b *board.Board, opts ...Option) RootModel {
	h := help.New()
	h.ShowAll = false

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search tasks"
	search.CharLimit = 128

	m := RootModel{
		board:  b,
		log:    log.New(io.Discard),
		now:    time.Now,
		keys:   DefaultKeyMap(),
		help:   h,
		search: search,
		form:   newTaskForm(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the task list
func (m RootModel) Init() tea.Cmd {
	return m.board.Refresh()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case board.TasksLoadedMsg:
		cmds = append(cmds, m.board.Handle(msg))
		if msg.Err == nil && !m.summarySent {
			m.summarySent = true
			cmds = append(cmds, m.dueSummary())
		}

	case board.ReorderPersistedMsg, board.TransferPersistedMsg, board.MutationDoneMsg:
		cmds = append(cmds, m.board.Handle(msg))

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()

	case StatusMsg:
		m.statusMsg = msg.Message

	case notifiedMsg:
		if msg.Err != nil {
			m.log.Warn("desktop notification failed", "err", msg.Err)
		}
		return m, nil
	}

	m.clampCursors()
	cmds = append(cmds, m.mirrorAlert())
	return m, tea.Batch(cmds...)
}

// handleKey routes a key to whichever layer is on top: alert, delete
// confirmation, form, search box, help, then the board itself
func (m RootModel) handleKey(msg tea.KeyMsg) (RootModel, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.statusMsg = ""
	m.errorMsg = ""

	if key.Matches(msg, m.keys.ThemeCycle) {
		next := theme.Next(theme.Current.Theme.Name)
		theme.SetTheme(next)
		m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
		return m, nil
	}

	switch {
	case m.board.Alert() != "":
		switch msg.String() {
		case "enter", "esc", " ":
			m.board.DismissAlert()
			m.notifiedAlert = ""
		}
		return m, nil

	case m.board.PendingDelete() != "":
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m, m.board.ConfirmDelete(true)
		case key.Matches(msg, m.keys.No):
			m.board.ConfirmDelete(false)
		}
		return m, nil

	case m.board.Session().Open():
		return m.handleFormKey(msg)

	case m.searching:
		return m.handleSearchKey(msg)

	case m.helpVisible:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.helpVisible = false
			m.help.ShowAll = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	return m.handleNormalKey(msg)
}

func (m RootModel) handleFormKey(msg tea.KeyMsg) (RootModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.board.CancelSession()
		return m, nil
	case m.board.Session().Submitting:
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.board.SetDraft(m.form.Draft(m.now()))
		return m, m.board.Submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg, m.keys)
	return m, cmd
}

func (m RootModel) handleSearchKey(msg tea.KeyMsg) (RootModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.board.SetSearch("")
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.board.Filter().Search {
		m.board.SetSearch(m.search.Value())
	}
	return m, cmd
}

func (m RootModel) handleNormalKey(msg tea.KeyMsg) (RootModel, tea.Cmd) {
	kanban := m.board.ActiveName() == board.ViewKanban

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true
		m.help.ShowAll = true

	case key.Matches(msg, m.keys.TableView):
		m.board.SwitchView(board.ViewTable)
	case key.Matches(msg, m.keys.KanbanView):
		m.board.SwitchView(board.ViewKanban)
	case key.Matches(msg, m.keys.ToggleView):
		if kanban {
			m.board.SwitchView(board.ViewTable)
		} else {
			m.board.SwitchView(board.ViewKanban)
		}

	case key.Matches(msg, m.keys.Filter):
		next := board.NextFilterStatus(m.board.Filter().Status)
		m.board.SetStatusFilter(next)
		m.statusMsg = fmt.Sprintf("Status: %s", next)
	case key.Matches(msg, m.keys.ClearFilter):
		m.search.SetValue("")
		m.board.SetStatusFilter(board.StatusAll)
		m.board.SetSearch("")
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.board.Filter().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.board.Refresh()

	case key.Matches(msg, m.keys.Add):
		m.board.OpenCreate()
		return m, m.form.Load(m.board.Session().Draft)
	case key.Matches(msg, m.keys.Edit):
		if id := m.cursor(); id != "" && m.board.OpenEdit(id) {
			return m, m.form.Load(m.board.Session().Draft)
		}
	case key.Matches(msg, m.keys.Delete):
		if id := m.cursor(); id != "" {
			m.board.RequestDelete(id)
		}

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.shift(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.shift(1)
	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.transfer(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m, m.transfer(1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.board.Table().Units()))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.board.Table().Units()))
	case kanban && key.Matches(msg, m.keys.Left):
		m.kanbanColumn = max(m.kanbanColumn-1, 0)
	case kanban && key.Matches(msg, m.keys.Right):
		m.kanbanColumn = min(m.kanbanColumn+1, len(model.Statuses)-1)
	}
	return m, nil
}

// shift drags the task under the cursor up or down. Table moves are
// persisted; kanban moves within a column are local.
func (m *RootModel) shift(delta int) tea.Cmd {
	if m.board.ActiveName() == board.ViewKanban {
		m.board.ShiftCard(m.kanbanCursor, delta)
		return nil
	}
	return m.board.MoveRow(m.tableCursor, delta)
}

// transfer drags the kanban card under the cursor into a neighbouring
// column; the cursor follows it
func (m *RootModel) transfer(delta int) tea.Cmd {
	if m.board.ActiveName() != board.ViewKanban || m.kanbanCursor == "" {
		return nil
	}
	cmd := m.board.TransferCard(m.kanbanCursor, delta)
	if cmd != nil {
		if status, ok := m.board.Kanban().ColumnOf(m.kanbanCursor); ok {
			m.kanbanColumn = board.ColumnIndex(status)
		}
	}
	return cmd
}

// cursor returns the task under the cursor in the active view
func (m RootModel) cursor() model.TaskID {
	if m.board.ActiveName() == board.ViewKanban {
		return m.kanbanCursor
	}
	return m.tableCursor
}

func (m RootModel) kanbanCards() []*board.Unit {
	var out []*board.Unit
	for _, u := range m.board.Kanban().Column(model.Statuses[m.kanbanColumn]) {
		if !u.Hidden {
			out = append(out, u)
		}
	}
	return out
}

func (m *RootModel) moveCursor(delta int) {
	if m.board.ActiveName() == board.ViewKanban {
		m.kanbanCursor, m.kanbanIndex = step(m.kanbanCards(), m.kanbanCursor, delta)
		return
	}
	m.tableCursor, m.tableIndex = step(board.VisibleUnits(m.board.Table()), m.tableCursor, delta)
}

// clampCursors keeps both cursors on visible tasks
func (m *RootModel) clampCursors() {
	m.tableCursor, m.tableIndex = settle(board.VisibleUnits(m.board.Table()), m.tableCursor, m.tableIndex)
	m.kanbanCursor, m.kanbanIndex = settle(m.kanbanCards(), m.kanbanCursor, m.kanbanIndex)
}

// settle returns id if it is among units, otherwise the unit nearest the
// remembered index
func settle(units []*board.Unit, id model.TaskID, index int) (model.TaskID, int) {
	if len(units) == 0 {
		return "", 0
	}
	for i, u := range units {
		if u.ID == id {
			return id, i
		}
	}
	index = min(max(index, 0), len(units)-1)
	return units[index].ID, index
}

func step(units []*board.Unit, id model.TaskID, delta int) (model.TaskID, int) {
	id, i := settle(units, id, 0)
	if id == "" {
		return "", 0
	}
	i = min(max(i+delta, 0), len(units)-1)
	return units[i].ID, i
}

// mirrorAlert sends a newly raised alert to the desktop once
func (m *RootModel) mirrorAlert() tea.Cmd {
	alert := m.board.Alert()
	if alert == "" || alert == m.notifiedAlert {
		return nil
	}
	m.notifiedAlert = alert
	if !m.notifier.IsEnabled() {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		return notifiedMsg{Err: n.SendAlert(alert)}
	}
}

// dueSummary reports overdue and due-soon tasks after the first load
func (m *RootModel) dueSummary() tea.Cmd {
	overdue, soon := m.board.DueCounts()
	if overdue+soon > 0 {
		m.statusMsg = fmt.Sprintf("%d overdue, %d due soon", overdue, soon)
	}
	if !m.notifier.IsEnabled() {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		return notifiedMsg{Err: n.SendDueSummary(overdue, soon)}
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	summary := " " + views.RenderSummary(m.board.Summary(), m.board.Filter())
	footer := m.renderFooter()

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(summary) - lipgloss.Height(footer)
	if contentHeight < 3 {
		contentHeight = 3
	}

	content := m.renderContent(contentHeight)
	content = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(content)

	return strings.Join([]string{header, summary, content, footer}, "\n")
}

func (m RootModel) renderContent(height int) string {
	styles := theme.Current.Styles
	center := func(s string) string {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, s)
	}

	switch {
	case m.board.Alert() != "":
		body := m.board.Alert() + "\n\n" + styles.HelpKey.Render("enter") + styles.HelpDesc.Render(" ok")
		return center(styles.AlertDialog.Render(body))

	case m.board.PendingDelete() != "":
		return center(styles.Dialog.Render(m.confirmText()))

	case m.board.Session().Open():
		s := m.board.Session()
		return center(m.form.View(s.Kind, s.Submitting, m.width))

	case m.helpVisible:
		return center(styles.Panel.Render(m.help.View(m.keys)))

	case !m.board.Loaded():
		return center(styles.Placeholder.Render("Loading tasks..."))

	case m.board.Summary().Empty:
		return views.RenderEmpty(m.board.Filter().Active(), m.width, height)

	case m.board.ActiveName() == board.ViewKanban:
		return views.RenderKanban(m.board.Kanban(), m.board.Summary(), m.kanbanColumn, m.kanbanCursor, m.width, height)
	}
	return views.RenderTable(m.board.Table(), m.tableCursor, m.width, height)
}

func (m RootModel) confirmText() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	id := m.board.PendingDelete()
	desc := board.Extract(m.board.Active().Unit(id)).Description
	if desc == "" {
		desc = "this task"
	}
	q := lipgloss.NewStyle().Foreground(t.Warning).Bold(true).
		Render(fmt.Sprintf("Are you sure you want to delete %q?", desc))
	return q + "\n\n" +
		styles.HelpKey.Render("y") + styles.HelpDesc.Render(" delete") +
		styles.HelpSeparator.Render(" │ ") +
		styles.HelpKey.Render("n") + styles.HelpDesc.Render(" keep")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("taskboard")

	tabStyle := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1)
	activeTab := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Underline(true).Padding(0, 1)
	var tabs []string
	for i, name := range []board.ViewName{board.ViewTable, board.ViewKanban} {
		label := fmt.Sprintf("%d %s", i+1, name)
		if name == m.board.ActiveName() {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title}, tabs...)...)
	rightSide := tabStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the search box or status line, then the key hints
func (m RootModel) renderFooter() string {
	t := theme.Current.Theme

	var lines []string
	switch {
	case m.searching:
		lines = append(lines, m.search.View())
	case m.errorMsg != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg))
	case m.statusMsg != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg))
	}

	if m.board.Session().Open() {
		lines = append(lines, m.help.ShortHelpView(formKeys{m.keys}.ShortHelp()))
	} else if !m.helpVisible {
		lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(lines, "\n")
}
