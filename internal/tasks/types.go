package tasks

import (
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

// TaskList represents a Google Tasks task list
type TaskList struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Updated time.Time `json:"updated,omitzero"`
}

// Task represents a Google Tasks task
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"` // "needsAction" or "completed"
	Due         time.Time `json:"due,omitzero"`
	Completed   time.Time `json:"completed,omitzero"`
	Updated     time.Time `json:"updated,omitzero"`
	Parent      string    `json:"parent,omitempty"`      // parent task ID for subtasks
	Position    string    `json:"position,omitempty"`    // lexicographic position in the list
	WebViewLink string    `json:"webViewLink,omitempty"` // link to the task in the Tasks web UI
	Links       []Link    `json:"links,omitempty"`
}

// Link is a resource attached to a task.
type Link struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// TaskInput carries the writable fields for creating or updating a task.
// Zero values mean "leave unset" on create and "keep current" on update.
type TaskInput struct {
	Title    string
	Notes    string
	Status   string // "needsAction" or "completed"
	Due      time.Time
	Parent   string // parent task ID for subtasks
	Previous string // previous sibling task ID for positioning
}

// parseAPITime converts the RFC 3339 timestamps the Tasks API returns into
// time.Time values, mapping absent or malformed strings to the zero time.
func parseAPITime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// toTaskList converts a Google Tasks TaskList to our TaskList type
func toTaskList(tl *tasks.TaskList) TaskList {
	if tl == nil {
		return TaskList{}
	}

	return TaskList{
		ID:      tl.Id,
		Title:   tl.Title,
		Updated: parseAPITime(tl.Updated),
	}
}

// toTask converts a Google Tasks Task to our Task type
func toTask(t *tasks.Task) Task {
	if t == nil {
		return Task{}
	}

	result := Task{
		ID:          t.Id,
		Title:       t.Title,
		Notes:       t.Notes,
		Status:      t.Status,
		Due:         parseAPITime(t.Due),
		Updated:     parseAPITime(t.Updated),
		Parent:      t.Parent,
		Position:    t.Position,
		WebViewLink: t.WebViewLink,
	}

	if t.Completed != nil {
		result.Completed = parseAPITime(*t.Completed)
	}

	for _, link := range t.Links {
		result.Links = append(result.Links, Link{
			Type:        link.Type,
			Description: link.Description,
			Link:        link.Link,
		})
	}

	return result
}
