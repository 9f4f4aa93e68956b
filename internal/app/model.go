// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ewhitmore/taskdeck/internal/config"
	"github.com/ewhitmore/taskdeck/internal/domain"
	"github.com/ewhitmore/taskdeck/internal/services/poll"
	"github.com/ewhitmore/taskdeck/internal/services/tasks"
	"github.com/ewhitmore/taskdeck/internal/types"
	"github.com/ewhitmore/taskdeck/internal/ui/board"
	"github.com/ewhitmore/taskdeck/internal/ui/statusbar"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
	"github.com/ewhitmore/taskdeck/internal/ui/toast"
)

// Re-export Toast type for convenience
type Toast = types.Toast

// tickMsg drives the poll/toast heartbeat.
type tickMsg time.Time

// refreshDoneMsg reports the outcome of a task list refetch.
type refreshDoneMsg struct {
	err error
}

// noticeMsg carries a toast emitted by the controller.
type noticeMsg types.Toast

// opDoneMsg signals that a mutation command has resolved.
type opDoneMsg struct{}

// heartbeat is the tick granularity; the actual poll cadence comes from the
// scheduler and is checked against lastRefresh on every tick.
const heartbeat = time.Second

// channelNotifier bridges controller notifications into the TEA loop.
// Sends never block; if the buffer is full the notice is dropped.
type channelNotifier struct {
	ch  chan types.Toast
	ttl time.Duration
}

func (n *channelNotifier) Notify(message string, severity tasks.Severity) {
	t := types.NewToast(toastLevel(severity), message, n.ttl)
	select {
	case n.ch <- t:
	default:
	}
}

func toastLevel(severity tasks.Severity) types.ToastLevel {
	switch severity {
	case tasks.SeveritySuccess:
		return types.ToastSuccess
	case tasks.SeverityWarning:
		return types.ToastWarning
	case tasks.SeverityError:
		return types.ToastError
	default:
		return types.ToastInfo
	}
}

// Model is the main application state
type Model struct {
	// Core services
	controller *tasks.Controller
	scheduler  *poll.Scheduler
	notices    chan types.Toast
	done       chan struct{}

	// UI state
	mode     types.Mode
	cursor   board.Cursor
	selected map[string]bool
	toasts   []Toast

	// Terminal size
	width  int
	height int

	// Styles
	styles    *styles.Styles
	toastView *toast.Renderer

	// Configuration
	config *config.Config

	// Loading state
	loading     bool
	refreshing  bool
	spinner     spinner.Model
	lastRefresh time.Time

	// Logger
	logger *slog.Logger
}

// New creates a new application model for one project board.
func New(cfg *config.Config, client tasks.API, projectID string, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	notifier := &channelNotifier{
		ch:  make(chan types.Toast, 32),
		ttl: cfg.ToastDuration(),
	}

	controller := tasks.NewController(projectID, client, notifier, logger, cfg.ReorderDebounce())
	scheduler := poll.NewScheduler(cfg.FocusedInterval(), cfg.BlurredInterval())

	st := styles.New()
	return Model{
		controller: controller,
		scheduler:  scheduler,
		notices:    notifier.ch,
		done:       make(chan struct{}),
		mode:       types.ModeNormal,
		selected:   make(map[string]bool),
		toasts:     []Toast{},
		styles:     st,
		toastView:  toast.New(st),
		config:     cfg,
		loading:    true,
		spinner:    s,
		logger:     logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refreshCmd(),
		m.waitForNotice(),
		tickEvery(heartbeat),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.FocusMsg:
		if m.scheduler.SetVisibility(poll.Focused) {
			return m, m.refreshNow()
		}
		return m, nil

	case tea.BlurMsg:
		m.scheduler.SetVisibility(poll.Visible)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.expireToasts()
		cmds := []tea.Cmd{tickEvery(heartbeat)}
		if m.dueForRefresh() {
			cmds = append(cmds, m.refreshNow())
		}
		return m, tea.Batch(cmds...)

	case refreshDoneMsg:
		m.refreshing = false
		m.loading = false
		m.lastRefresh = time.Now()
		if msg.err != nil {
			m.toasts = append(m.toasts, types.NewToast(
				types.ToastError,
				fmt.Sprintf("Refresh failed: %v", msg.err),
				m.config.ToastDuration(),
			))
		}
		m.clampCursor()
		return m, nil

	case noticeMsg:
		m.toasts = append(m.toasts, Toast(msg))
		return m, m.waitForNotice()

	case opDoneMsg:
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return fmt.Sprintf("\n  %s Loading tasks...\n", m.spinner.View())
	}

	sb := statusbar.New(m.mode, m.width, m.styles)
	statusBarView := sb.Render()
	boardHeight := m.height - lipgloss.Height(statusBarView) - 1

	boardView := board.Render(
		m.columns(),
		m.cursor,
		m.selected,
		m.pendingTasks(),
		m.styles,
		m.width,
		boardHeight,
	)

	view := lipgloss.JoinVertical(lipgloss.Left, boardView, statusBarView)

	if toastView := m.toastView.Render(m.toasts, m.width); toastView != "" {
		view = lipgloss.JoinVertical(lipgloss.Right, view, toastView)
	}

	return view
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.controller.Stop()
		close(m.done)
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	case "esc":
		if m.mode != types.ModeNormal {
			m.mode = types.ModeNormal
			m.selected = make(map[string]bool)
		}
		return m, nil
	}

	switch m.mode {
	case types.ModeSelect:
		return m.handleSelectMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "H":
		return m.shiftStatus(-1)
	case "L":
		return m.shiftStatus(1)
	case "J":
		return m.reorder(1), nil
	case "K":
		return m.reorder(-1), nil
	case "d":
		if task, ok := m.currentTask(); ok && task.Status != domain.StatusDone {
			return m, m.moveCmd(task.ID, domain.StatusDone)
		}
		return m, nil
	case "c":
		status := domain.Statuses[m.cursor.Column]
		return m, m.createCmd(status)
	case "x":
		if task, ok := m.currentTask(); ok {
			return m, m.deleteCmd(task)
		}
		return m, nil
	case "v":
		m.mode = types.ModeSelect
		m.selected = make(map[string]bool)
		return m, nil
	case "r":
		return m, m.refreshNow()
	}
	return m.handleNavigation(msg), nil
}

func (m Model) handleSelectMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if task, ok := m.currentTask(); ok {
			if m.selected[task.ID] {
				delete(m.selected, task.ID)
			} else {
				m.selected[task.ID] = true
			}
		}
		return m, nil
	case "D":
		targets := m.selectedTasks()
		m.mode = types.ModeNormal
		m.selected = make(map[string]bool)
		if len(targets) == 0 {
			return m, nil
		}
		return m, m.bulkDeleteCmd(targets)
	case "1", "2", "3", "4":
		status := domain.Statuses[int(msg.String()[0]-'1')]
		ids := make([]string, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		m.mode = types.ModeNormal
		m.selected = make(map[string]bool)
		if len(ids) == 0 {
			return m, nil
		}
		return m, m.bulkStatusCmd(ids, status)
	}
	return m.handleNavigation(msg), nil
}

func (m Model) handleNavigation(msg tea.KeyMsg) Model {
	columns := m.columns()
	switch msg.String() {
	case "h", "left":
		if m.cursor.Column > 0 {
			m.cursor.Column--
		}
	case "l", "right":
		if m.cursor.Column < len(columns)-1 {
			m.cursor.Column++
		}
	case "j", "down":
		if m.cursor.Task < len(columns[m.cursor.Column].Tasks)-1 {
			m.cursor.Task++
		}
	case "k", "up":
		if m.cursor.Task > 0 {
			m.cursor.Task--
		}
	case "g":
		m.cursor.Task = 0
	case "G":
		m.cursor.Task = len(columns[m.cursor.Column].Tasks) - 1
	}
	m.clampCursor()
	return m
}

// shiftStatus moves the task under the cursor one column left or right.
func (m Model) shiftStatus(delta int) (Model, tea.Cmd) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil
	}

	col := m.cursor.Column + delta
	if col < 0 || col >= len(domain.Statuses) {
		return m, nil
	}

	return m, m.moveCmd(task.ID, domain.Statuses[col])
}

// reorder moves the task under the cursor one slot up or down within its
// column. The list updates in place; persistence is debounced by the
// controller.
func (m Model) reorder(delta int) Model {
	columns := m.columns()
	col := columns[m.cursor.Column]
	target := m.cursor.Task + delta
	if target < 0 || target >= len(col.Tasks) {
		return m
	}

	task := col.Tasks[m.cursor.Task]
	m.controller.ReorderTask(task.ID, target, col.Status)
	m.cursor.Task = target
	return m
}

func (m Model) moveCmd(id string, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		m.controller.MoveTask(ctx, id, status)
		return opDoneMsg{}
	}
}

func (m Model) createCmd(status domain.Status) tea.Cmd {
	create := func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		m.controller.CreateTask(ctx, domain.Task{
			Title:  "New task",
			Status: status,
		})
		return opDoneMsg{}
	}
	// The new task only appears once the server assigns it an ID, so chase
	// the create with a refetch instead of waiting for the next poll.
	return tea.Sequence(create, m.refreshCmd())
}

func (m Model) deleteCmd(task domain.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		m.controller.DeleteTask(ctx, task)
		return opDoneMsg{}
	}
}

func (m Model) bulkDeleteCmd(targets []domain.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		m.controller.BulkDelete(ctx, targets)
		return opDoneMsg{}
	}
}

func (m Model) bulkStatusCmd(ids []string, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		m.controller.BulkStatusChange(ctx, ids, status)
		return opDoneMsg{}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		return refreshDoneMsg{err: m.controller.Refresh(ctx)}
	}
}

// refreshNow starts a refetch unless one is already in flight.
func (m *Model) refreshNow() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	return m.refreshCmd()
}

func (m Model) dueForRefresh() bool {
	if m.refreshing || !m.scheduler.ShouldPoll() {
		return false
	}
	interval := m.scheduler.Interval()
	return interval > 0 && time.Since(m.lastRefresh) >= interval
}

// waitForNotice blocks until the controller emits a notification or the
// model shuts down, so the listener goroutine is released at quit.
func (m Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-m.notices:
			return noticeMsg(t)
		case <-m.done:
			return nil
		}
	}
}

func (m Model) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.config.Timeout())
}

func (m Model) columns() []board.Column {
	return board.BuildColumns(m.controller.Tasks())
}

func (m Model) currentTask() (domain.Task, bool) {
	columns := m.columns()
	if m.cursor.Column >= len(columns) {
		return domain.Task{}, false
	}
	col := columns[m.cursor.Column]
	if m.cursor.Task >= len(col.Tasks) {
		return domain.Task{}, false
	}
	return col.Tasks[m.cursor.Task], true
}

func (m Model) selectedTasks() []domain.Task {
	var out []domain.Task
	for _, task := range m.controller.Tasks() {
		if m.selected[task.ID] {
			out = append(out, task)
		}
	}
	return out
}

func (m Model) pendingTasks() map[string]bool {
	pending := make(map[string]bool)
	for _, task := range m.controller.Tasks() {
		if m.controller.Pending(task.ID) {
			pending[task.ID] = true
		}
	}
	return pending
}

func (m *Model) clampCursor() {
	columns := m.columns()
	if m.cursor.Column < 0 {
		m.cursor.Column = 0
	}
	if m.cursor.Column >= len(columns) {
		m.cursor.Column = len(columns) - 1
	}
	if m.cursor.Column < 0 {
		m.cursor.Column = 0
		m.cursor.Task = 0
		return
	}
	count := len(columns[m.cursor.Column].Tasks)
	if m.cursor.Task >= count {
		m.cursor.Task = count - 1
	}
	if m.cursor.Task < 0 {
		m.cursor.Task = 0
	}
}

func (m *Model) expireToasts() {
	now := time.Now()
	filtered := make([]Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			filtered = append(filtered, t)
		}
	}
	m.toasts = filtered
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
