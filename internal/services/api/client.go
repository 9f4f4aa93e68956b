// Package api provides the HTTP client for the remote task service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ewhitmore/taskdeck/internal/domain"
)

// Doer executes HTTP requests. Satisfied by *http.Client; injected so tests
// can run without a network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the remote task API
type Client struct {
	baseURL string
	doer    Doer
	logger  *slog.Logger
}

// NewClient creates a new API client with dependency injection
func NewClient(baseURL string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  logger,
	}
}

// TaskUpdate is a partial field set for PUT /tasks/{id}. Nil fields are
// omitted from the payload. ClientTimestamp (epoch milliseconds) rides along
// on order-affecting writes for server-side last-writer-wins resolution.
type TaskUpdate struct {
	Title           *string        `json:"title,omitempty"`
	Description     *string        `json:"description,omitempty"`
	Status          *domain.Status `json:"status,omitempty"`
	TaskOrder       *int           `json:"task_order,omitempty"`
	Assignee        *string        `json:"assignee,omitempty"`
	Feature         *string        `json:"feature,omitempty"`
	Priority        *int           `json:"priority,omitempty"`
	ClientTimestamp *int64         `json:"client_timestamp,omitempty"`
}

// ListTasks fetches the full task list for a project (the poll target).
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	c.logger.Debug("fetching task list", "project", projectID)

	path := fmt.Sprintf("/api/projects/%s/tasks", url.PathEscape(projectID))
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &domain.APIError{Op: "list", Err: err}
	}

	var tasks []domain.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, &domain.APIError{Op: "list", Message: "failed to parse JSON", Err: err}
	}

	c.logger.Debug("fetched tasks", "project", projectID, "count", len(tasks))
	return tasks, nil
}

// CreateTask submits a new task and returns the server's record, including
// the server-issued id.
func (c *Client) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	c.logger.Debug("creating task", "project", task.ProjectID, "title", task.Title)

	body, err := c.do(ctx, http.MethodPost, "/api/tasks", task)
	if err != nil {
		return domain.Task{}, &domain.APIError{Op: "create", Err: err}
	}

	var created domain.Task
	if err := json.Unmarshal(body, &created); err != nil {
		return domain.Task{}, &domain.APIError{Op: "create", Message: "failed to parse JSON", Err: err}
	}

	c.logger.Debug("task created", "id", created.ID)
	return created, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (domain.Task, error) {
	c.logger.Debug("updating task", "id", id)

	path := "/api/tasks/" + url.PathEscape(id)
	body, err := c.do(ctx, http.MethodPut, path, update)
	if err != nil {
		return domain.Task{}, &domain.APIError{Op: "update", TaskID: id, Err: err}
	}

	var updated domain.Task
	if err := json.Unmarshal(body, &updated); err != nil {
		return domain.Task{}, &domain.APIError{Op: "update", TaskID: id, Message: "failed to parse JSON", Err: err}
	}

	c.logger.Debug("task updated", "id", id)
	return updated, nil
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	c.logger.Debug("deleting task", "id", id)

	path := "/api/tasks/" + url.PathEscape(id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return &domain.APIError{Op: "delete", TaskID: id, Err: err}
	}

	c.logger.Debug("task deleted", "id", id)
	return nil
}

// do performs one HTTP round trip and returns the response body. Non-2xx
// responses become errors carrying the server's message when the body has
// one.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		if resp.StatusCode == http.StatusConflict {
			return nil, domain.ErrConflict
		}
		var serverErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &serverErr); err == nil {
			if serverErr.Error != "" {
				return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, serverErr.Error)
			}
			if serverErr.Message != "" {
				return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, serverErr.Message)
			}
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return body, nil
}
