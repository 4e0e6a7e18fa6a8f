// Package tasks wraps the Google Tasks v1 API: task list CRUD, task
// CRUD, completion, moving tasks between parents and positions, and
// clearing completed tasks.
//
// Task list IDs are opaque; DefaultTaskList ("@default") always names
// the user's primary list. Due-date filters and the showCompleted flag
// on ListTasks mirror the API's query parameters.
package tasks
