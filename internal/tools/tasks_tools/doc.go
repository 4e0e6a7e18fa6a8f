// Package tasks_tools registers the MCP tools for Google Tasks: task
// list CRUD (tasks_list_task_lists, tasks_get_task_list,
// tasks_create_task_list, tasks_update_task_list,
// tasks_delete_task_list) and task operations (tasks_list_tasks,
// tasks_get_task, tasks_create_task, tasks_update_task,
// tasks_complete_task, tasks_delete_task, tasks_move_task,
// tasks_clear_completed).
//
// A taskListId argument is optional everywhere; handlers fall back to
// "@default", the alias the Tasks API reserves for the user's primary
// list. Write tools are withheld in read-only mode.
package tasks_tools
