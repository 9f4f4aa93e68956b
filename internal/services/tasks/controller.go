// Package tasks owns the merged task list for one project and implements
// the board's mutation operations over the remote API.
//
// Every mutation applies its result to the visible list before the network
// call starts, tracked by the optimistic registry; a failed call rolls the
// task back to its prior state unless a newer operation on the same task has
// superseded it. Periodic poll snapshots are merged in through
// ApplySnapshot, which prefers pending optimistic rows so the UI never
// visibly regresses mid-flight.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ewhitmore/taskdeck/internal/domain"
	"github.com/ewhitmore/taskdeck/internal/services/api"
	"github.com/ewhitmore/taskdeck/internal/services/optimistic"
	"golang.org/x/sync/errgroup"
)

// API is the remote task service surface the controller needs.
type API interface {
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, update api.TaskUpdate) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Severity classifies a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Notifier receives user-visible notifications. Injected so the controller
// stays testable without a UI tree.
type Notifier interface {
	Notify(message string, severity Severity)
}

const persistTimeout = 10 * time.Second

// Controller is the per-project task list owner. All mutations funnel
// through its methods; external callers never touch the list directly.
type Controller struct {
	mu        sync.Mutex
	projectID string
	client    API
	registry  *optimistic.Registry[domain.Task]
	notifier  Notifier
	logger    *slog.Logger
	debounce  *Debouncer
	now       func() time.Time
	tasks     []domain.Task
}

// NewController creates a controller for one project. reorderDelay is the
// debounce window for persisting drag reorders.
func NewController(projectID string, client API, notifier Notifier, logger *slog.Logger, reorderDelay time.Duration) *Controller {
	return &Controller{
		projectID: projectID,
		client:    client,
		registry:  optimistic.NewRegistry[domain.Task](),
		notifier:  notifier,
		logger:    logger,
		debounce:  NewDebouncer(reorderDelay),
		now:       time.Now,
	}
}

// Tasks returns a copy of the merged visible task list.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Pending reports whether a task has an unresolved optimistic mutation.
func (c *Controller) Pending(id string) bool {
	return c.registry.IsPending(id)
}

// ApplySnapshot merges a freshly polled server snapshot into the visible
// list. For each task the pending optimistic version wins if one exists;
// tasks known only optimistically are not fabricated into the list. The
// merge is idempotent and safe to apply in any order relative to in-flight
// commits.
func (c *Controller) ApplySnapshot(server []domain.Task) {
	merged := make([]domain.Task, 0, len(server))
	for _, t := range server {
		if pending, ok := c.registry.Pending(t.ID); ok {
			merged = append(merged, pending)
		} else {
			merged = append(merged, t)
		}
	}

	c.mu.Lock()
	c.tasks = merged
	c.mu.Unlock()
}

// Refresh fetches the authoritative task list and merges it. The caller
// decides how to surface a fetch failure; mutations in flight are untouched
// either way.
func (c *Controller) Refresh(ctx context.Context) error {
	server, err := c.client.ListTasks(ctx, c.projectID)
	if err != nil {
		c.logger.Warn("task list refresh failed", "project", c.projectID, "error", err)
		return err
	}
	c.ApplySnapshot(server)
	return nil
}

// Stop cancels pending debounced persistence. Used at shutdown.
func (c *Controller) Stop() {
	c.debounce.Stop()
}

// MoveTask moves a task to another status column, placing it last among the
// destination's tasks. The visible list changes immediately; a failed
// remote update rolls back and notifies unless a newer operation on the
// same task superseded this one. Also backs the "complete" shortcut via
// MoveTask(id, StatusDone).
func (c *Controller) MoveTask(ctx context.Context, id string, status domain.Status) {
	_ = c.moveTask(ctx, id, status, true)
}

func (c *Controller) moveTask(ctx context.Context, id string, status domain.Status, notify bool) error {
	if !status.Valid() {
		c.logger.Debug("move rejected: unknown status", "id", id, "status", status)
		return nil
	}

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		c.logger.Debug("move rejected: task not found", "id", id)
		return nil
	}
	prev := c.tasks[idx]
	order := domain.CalculateOrder(domain.Last(), domain.SiblingsOf(c.tasks, status, id))

	updated := prev
	updated.Status = status
	updated.TaskOrder = order
	token := c.registry.Begin(id, updated)
	c.tasks[idx] = updated
	c.mu.Unlock()

	ts := c.now().UnixMilli()
	_, err := c.client.UpdateTask(ctx, id, api.TaskUpdate{
		Status:          &status,
		TaskOrder:       &order,
		ClientTimestamp: &ts,
	})
	if err != nil {
		if c.registry.RollbackIfCurrent(id, token) {
			c.restore(prev)
			c.logger.Warn("move failed, rolled back", "id", id, "error", err)
			if notify {
				c.notifier.Notify(failureMessage("Failed to move task", err), SeverityError)
			}
		}
		return err
	}

	c.registry.CommitIfCurrent(id, token)
	return nil
}

// ReorderTask moves a task to targetIndex within its status column. The
// visible list updates immediately and persistence is debounced, coalescing
// rapid successive reorders of the same task into one write. A failed
// persist is not rolled back; the next poll converges any divergence.
func (c *Controller) ReorderTask(id string, targetIndex int, status domain.Status) {
	c.mu.Lock()
	column := domain.SortByOrder(domain.SiblingsOf(c.tasks, status, ""))

	movingIndex := -1
	for i, t := range column {
		if t.ID == id {
			movingIndex = i
			break
		}
	}
	if movingIndex < 0 {
		c.mu.Unlock()
		c.logger.Debug("reorder rejected: task not in status", "id", id, "status", status)
		return
	}
	if targetIndex < 0 || targetIndex >= len(column) {
		c.mu.Unlock()
		c.logger.Debug("reorder rejected: target out of range", "id", id, "target", targetIndex)
		return
	}
	if targetIndex == movingIndex {
		c.mu.Unlock()
		return
	}

	order := domain.ResolveReorder(column, movingIndex, targetIndex)
	if idx := c.indexOf(id); idx >= 0 {
		c.tasks[idx].TaskOrder = order
	}
	c.mu.Unlock()

	ts := c.now().UnixMilli()
	c.debounce.Trigger(id, func() {
		c.persistOrder(id, order, ts)
	})
}

func (c *Controller) persistOrder(id string, order int, ts int64) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	_, err := c.client.UpdateTask(ctx, id, api.TaskUpdate{
		TaskOrder:       &order,
		ClientTimestamp: &ts,
	})
	if err != nil {
		// Deliberately no rollback: yanking a card back after a drag is
		// worse than a short-lived divergence the next poll corrects.
		c.logger.Warn("reorder persist failed", "id", id, "error", err)
		c.notifier.Notify("Order change may not be saved", SeverityWarning)
	}
}

// CreateTask submits a new task. When no order is supplied it defaults to
// first among its status siblings. The created row is not inserted locally;
// the next poll reveals it with its server-issued id.
func (c *Controller) CreateTask(ctx context.Context, task domain.Task) {
	if task.ProjectID == "" {
		task.ProjectID = c.projectID
	}
	if !task.Status.Valid() {
		task.Status = domain.StatusTodo
	}
	if task.TaskOrder == 0 {
		c.mu.Lock()
		task.TaskOrder = domain.CalculateOrder(domain.First(), domain.SiblingsOf(c.tasks, task.Status, ""))
		c.mu.Unlock()
	}

	created, err := c.client.CreateTask(ctx, task)
	if err != nil {
		c.logger.Warn("create failed", "title", task.Title, "error", err)
		c.notifier.Notify(failureMessage("Failed to create task", err), SeverityError)
		return
	}

	c.logger.Debug("task created", "id", created.ID)
	c.notifier.Notify("Task created", SeveritySuccess)
}

// UpdateTask applies a partial field update optimistically.
func (c *Controller) UpdateTask(ctx context.Context, id string, update api.TaskUpdate) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		c.logger.Debug("update rejected: task not found", "id", id)
		return
	}
	prev := c.tasks[idx]
	updated := applyUpdate(prev, update)
	token := c.registry.Begin(id, updated)
	c.tasks[idx] = updated
	c.mu.Unlock()

	if update.Status != nil || update.TaskOrder != nil {
		ts := c.now().UnixMilli()
		update.ClientTimestamp = &ts
	}

	_, err := c.client.UpdateTask(ctx, id, update)
	if err != nil {
		if c.registry.RollbackIfCurrent(id, token) {
			c.restore(prev)
			c.logger.Warn("update failed, rolled back", "id", id, "error", err)
			c.notifier.Notify(failureMessage("Failed to update task", err), SeverityError)
		}
		return
	}

	c.registry.CommitIfCurrent(id, token)
}

// DeleteTask removes a task remotely and drops it from the visible list on
// success.
func (c *Controller) DeleteTask(ctx context.Context, task domain.Task) {
	if err := c.client.DeleteTask(ctx, task.ID); err != nil {
		c.logger.Warn("delete failed", "id", task.ID, "error", err)
		c.notifier.Notify(failureMessage("Failed to delete task", err), SeverityError)
		return
	}

	c.removeLocal(map[string]bool{task.ID: true})
	c.notifier.Notify("Task deleted", SeveritySuccess)
}

// BulkDelete deletes tasks concurrently, tolerating partial failure:
// successes are dropped from the visible list immediately, failures are
// counted and reported in aggregate. Returns (deleted, failed).
func (c *Controller) BulkDelete(ctx context.Context, targets []domain.Task) (int, int) {
	if len(targets) == 0 {
		return 0, 0
	}

	var (
		resultMu sync.Mutex
		deleted  = make(map[string]bool)
		failed   int
	)

	var g errgroup.Group
	for _, task := range targets {
		g.Go(func() error {
			if err := c.client.DeleteTask(ctx, task.ID); err != nil {
				c.logger.Warn("bulk delete: task failed", "id", task.ID, "error", err)
				resultMu.Lock()
				failed++
				resultMu.Unlock()
				return nil
			}
			resultMu.Lock()
			deleted[task.ID] = true
			resultMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(deleted) > 0 {
		c.removeLocal(deleted)
	}

	switch {
	case failed == 0:
		c.notifier.Notify(fmt.Sprintf("Deleted %d tasks", len(deleted)), SeveritySuccess)
	case len(deleted) == 0:
		c.notifier.Notify(fmt.Sprintf("Failed to delete %d tasks", failed), SeverityError)
	default:
		c.notifier.Notify(fmt.Sprintf("Deleted %d tasks, %d failed", len(deleted), failed), SeverityWarning)
	}
	return len(deleted), failed
}

// BulkStatusChange moves each task to status concurrently and reports one
// aggregate result. Returns (moved, failed).
func (c *Controller) BulkStatusChange(ctx context.Context, ids []string, status domain.Status) (int, int) {
	if len(ids) == 0 {
		return 0, 0
	}

	var (
		resultMu sync.Mutex
		failed   int
	)

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			if err := c.moveTask(ctx, id, status, false); err != nil {
				resultMu.Lock()
				failed++
				resultMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	moved := len(ids) - failed
	if failed == 0 {
		c.notifier.Notify(fmt.Sprintf("Moved %d tasks to %s", moved, status.Label()), SeveritySuccess)
	} else {
		c.notifier.Notify(fmt.Sprintf("Moved %d tasks to %s, %d failed", moved, status.Label(), failed), SeverityWarning)
	}
	return moved, failed
}

// indexOf returns the position of id in the visible list. Callers must hold
// c.mu.
func (c *Controller) indexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// restore writes a prior snapshot back into the visible list, if the task
// is still present.
func (c *Controller) restore(prev domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(prev.ID); idx >= 0 {
		c.tasks[idx] = prev
	}
}

func (c *Controller) removeLocal(ids map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if !ids[t.ID] {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
}

// applyUpdate merges a partial update into a task copy.
func applyUpdate(t domain.Task, u api.TaskUpdate) domain.Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.TaskOrder != nil {
		t.TaskOrder = *u.TaskOrder
	}
	if u.Assignee != nil {
		t.Assignee = *u.Assignee
	}
	if u.Feature != nil {
		t.Feature = *u.Feature
	}
	if u.Priority != nil {
		t.Priority = domain.Priority(*u.Priority)
	}
	return t
}

func failureMessage(fallback string, err error) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return fallback + ": " + err.Error()
}
