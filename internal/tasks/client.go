package tasks

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

// DefaultTaskList is the alias the Tasks API resolves to the user's
// primary task list.
const DefaultTaskList = "@default"

// Client wraps the Google Tasks service
type Client struct {
	svc *tasks.Service
}

// NewClient creates a new Tasks client using the shared credential
// manager. Returns an error if no valid token is cached yet.
func NewClient(ctx context.Context, auth *googleauth.Authenticator) (*Client, error) {
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found. Please authorize access first: %w", err)
	}

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ListTaskLists returns every task list of the authenticated user.
func (c *Client) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	result, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	taskLists := make([]TaskList, 0, len(result.Items))
	for _, tl := range result.Items {
		taskLists = append(taskLists, toTaskList(tl))
	}

	return taskLists, nil
}

// GetTaskList retrieves a single task list.
func (c *Client) GetTaskList(ctx context.Context, taskListID string) (*TaskList, error) {
	tl, err := c.svc.Tasklists.Get(taskListID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task list: %w", err)
	}

	result := toTaskList(tl)
	return &result, nil
}

// CreateTaskList creates a new task list with the given title.
func (c *Client) CreateTaskList(ctx context.Context, title string) (*TaskList, error) {
	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}

	result := toTaskList(created)
	return &result, nil
}

// DeleteTaskList deletes a task list along with all its tasks.
func (c *Client) DeleteTaskList(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasklists.Delete(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

// UpdateTaskList renames a task list. The API wants the resource ID
// repeated in the request body.
func (c *Client) UpdateTaskList(ctx context.Context, taskListID, title string) (*TaskList, error) {
	updated, err := c.svc.Tasklists.Update(taskListID, &tasks.TaskList{
		Id:    taskListID,
		Title: title,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update task list: %w", err)
	}

	result := toTaskList(updated)
	return &result, nil
}

// ListTasks lists the tasks of a list. Completed tasks only show up when
// showCompleted is set; dueMin and dueMax bound the due date when non-zero.
func (c *Client) ListTasks(ctx context.Context, taskListID string, showCompleted bool, dueMin, dueMax time.Time) ([]Task, error) {
	call := c.svc.Tasks.List(taskListID).Context(ctx)
	if showCompleted {
		// Completed tasks are only returned when hidden ones are too.
		call = call.ShowCompleted(true).ShowHidden(true)
	}
	if !dueMin.IsZero() {
		call = call.DueMin(dueMin.Format(time.RFC3339))
	}
	if !dueMax.IsZero() {
		call = call.DueMax(dueMax.Format(time.RFC3339))
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	taskList := make([]Task, 0, len(result.Items))
	for _, t := range result.Items {
		taskList = append(taskList, toTask(t))
	}

	return taskList, nil
}

// GetTask retrieves a single task.
func (c *Client) GetTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	t, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	result := toTask(t)
	return &result, nil
}

// CreateTask inserts a task into a list. Parent makes it a subtask and
// Previous places it after a sibling.
func (c *Client) CreateTask(ctx context.Context, taskListID string, input TaskInput) (*Task, error) {
	t := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Status: input.Status,
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	call := c.svc.Tasks.Insert(taskListID, t).Context(ctx)
	if input.Parent != "" {
		call = call.Parent(input.Parent)
	}
	if input.Previous != "" {
		call = call.Previous(input.Previous)
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := toTask(created)
	return &result, nil
}

// UpdateTask applies the non-zero fields of input to an existing task.
func (c *Client) UpdateTask(ctx context.Context, taskListID, taskID string, input TaskInput) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing task: %w", err)
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Notes != "" {
		existing.Notes = input.Notes
	}
	if input.Status != "" {
		existing.Status = input.Status
		// Reopening a task clears its completion timestamp.
		if input.Status == "needsAction" {
			existing.Completed = nil
		}
	}
	if !input.Due.IsZero() {
		existing.Due = input.Due.Format(time.RFC3339)
	}

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	result := toTask(updated)
	return &result, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskListID, taskID string) error {
	if err := c.svc.Tasks.Delete(taskListID, taskID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CompleteTask marks a task as completed, stamping the completion time.
func (c *Client) CompleteTask(ctx context.Context, taskListID, taskID string) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	existing.Status = "completed"
	completedTime := time.Now().UTC().Format(time.RFC3339)
	existing.Completed = &completedTime

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	result := toTask(updated)
	return &result, nil
}

// MoveTask repositions a task. Parent re-nests it under another task (or
// the root when empty) and previous orders it after a sibling.
func (c *Client) MoveTask(ctx context.Context, taskListID, taskID string, parent, previous string) (*Task, error) {
	call := c.svc.Tasks.Move(taskListID, taskID).Context(ctx)
	if parent != "" {
		call = call.Parent(parent)
	}
	if previous != "" {
		call = call.Previous(previous)
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	result := toTask(moved)
	return &result, nil
}

// ClearCompletedTasks removes every completed task from a list.
func (c *Client) ClearCompletedTasks(ctx context.Context, taskListID string) error {
	if err := c.svc.Tasks.Clear(taskListID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	return nil
}
