package tasks

import (
	"testing"
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

func TestParseAPITime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "RFC 3339 timestamp",
			value: "2025-10-31T14:00:00Z",
			want:  time.Date(2025, 10, 31, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "empty string",
			value: "",
			want:  time.Time{},
		},
		{
			name:  "malformed timestamp",
			value: "not-a-date",
			want:  time.Time{},
		},
		{
			name:  "date without time",
			value: "2025-10-31",
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAPITime(tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("parseAPITime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestToTaskList(t *testing.T) {
	if got := toTaskList(nil); got.ID != "" {
		t.Errorf("toTaskList(nil).ID = %q, want empty", got.ID)
	}

	tl := &tasks.TaskList{
		Id:      "test-list-id",
		Title:   "My Tasks",
		Updated: "2025-10-31T14:00:00Z",
	}
	got := toTaskList(tl)

	if got.ID != "test-list-id" {
		t.Errorf("ID = %q, want %q", got.ID, "test-list-id")
	}
	if got.Title != "My Tasks" {
		t.Errorf("Title = %q, want %q", got.Title, "My Tasks")
	}
	want := time.Date(2025, 10, 31, 14, 0, 0, 0, time.UTC)
	if !got.Updated.Equal(want) {
		t.Errorf("Updated = %v, want %v", got.Updated, want)
	}
}

func TestToTaskList_InvalidDate(t *testing.T) {
	tl := &tasks.TaskList{
		Id:      "list-1",
		Title:   "Test List",
		Updated: "not-a-date",
	}
	if got := toTaskList(tl); !got.Updated.IsZero() {
		t.Errorf("Updated = %v, want zero time for malformed input", got.Updated)
	}
}

func TestToTask(t *testing.T) {
	completed := "2025-10-31T10:00:00Z"
	task := &tasks.Task{
		Id:          "test-task-id",
		Title:       "Complete project",
		Notes:       "Implementation notes",
		Status:      "needsAction",
		Due:         "2025-11-07T09:00:00Z",
		Completed:   &completed,
		Updated:     "2025-10-30T08:00:00Z",
		Parent:      "parent-task-id",
		Position:    "00000000000000000001",
		WebViewLink: "https://tasks.google.com/task/abc",
		Links: []*tasks.TaskLinks{
			{
				Type:        "email",
				Description: "Related email",
				Link:        "https://mail.google.com/mail/u/0/#inbox/xyz",
			},
		},
	}
	got := toTask(task)

	if got.ID != "test-task-id" {
		t.Errorf("ID = %q, want %q", got.ID, "test-task-id")
	}
	if got.Title != "Complete project" {
		t.Errorf("Title = %q, want %q", got.Title, "Complete project")
	}
	if got.Notes != "Implementation notes" {
		t.Errorf("Notes = %q, want %q", got.Notes, "Implementation notes")
	}
	if got.Status != "needsAction" {
		t.Errorf("Status = %q, want %q", got.Status, "needsAction")
	}
	if want := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC); !got.Due.Equal(want) {
		t.Errorf("Due = %v, want %v", got.Due, want)
	}
	if want := time.Date(2025, 10, 31, 10, 0, 0, 0, time.UTC); !got.Completed.Equal(want) {
		t.Errorf("Completed = %v, want %v", got.Completed, want)
	}
	if want := time.Date(2025, 10, 30, 8, 0, 0, 0, time.UTC); !got.Updated.Equal(want) {
		t.Errorf("Updated = %v, want %v", got.Updated, want)
	}
	if got.Parent != "parent-task-id" {
		t.Errorf("Parent = %q, want %q", got.Parent, "parent-task-id")
	}
	if got.WebViewLink != "https://tasks.google.com/task/abc" {
		t.Errorf("WebViewLink = %q, want task web link", got.WebViewLink)
	}
	if len(got.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(got.Links))
	}
	if got.Links[0].Type != "email" {
		t.Errorf("Links[0].Type = %q, want %q", got.Links[0].Type, "email")
	}
}

func TestToTask_Nil(t *testing.T) {
	if got := toTask(nil); got.ID != "" {
		t.Errorf("toTask(nil).ID = %q, want empty", got.ID)
	}
}

func TestToTask_AbsentOptionalFields(t *testing.T) {
	task := &tasks.Task{
		Id:     "task-1",
		Title:  "Task without dates",
		Status: "needsAction",
	}
	got := toTask(task)

	if !got.Due.IsZero() {
		t.Errorf("Due = %v, want zero time", got.Due)
	}
	if !got.Completed.IsZero() {
		t.Errorf("Completed = %v, want zero time", got.Completed)
	}
	if got.Links != nil {
		t.Errorf("Links = %v, want nil", got.Links)
	}
}

func TestToTask_InvalidDates(t *testing.T) {
	invalidCompleted := "also-not-a-date"
	task := &tasks.Task{
		Id:        "task-1",
		Title:     "Task with invalid dates",
		Due:       "not-a-date",
		Completed: &invalidCompleted,
	}
	got := toTask(task)

	if !got.Due.IsZero() {
		t.Errorf("Due = %v, want zero time for malformed input", got.Due)
	}
	if !got.Completed.IsZero() {
		t.Errorf("Completed = %v, want zero time for malformed input", got.Completed)
	}
}
