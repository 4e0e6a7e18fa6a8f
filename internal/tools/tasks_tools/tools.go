package tasks_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/workspacekit/workspace-mcp/internal/server"
	"github.com/workspacekit/workspace-mcp/internal/tasks"
	"github.com/workspacekit/workspace-mcp/internal/tools/common"
)

// getTasksClient returns the cached Tasks client, mapping a missing token to
// the authorization walkthrough so agents can recover on their own.
func getTasksClient(sc *server.ServerContext) (*tasks.Client, error) {
	client, err := sc.TasksClient()
	if err != nil {
		if !sc.Authenticator().Status().HasCredentials {
			return nil, fmt.Errorf("%s", sc.Authenticator().AuthenticationErrorMessage())
		}
		return nil, fmt.Errorf("failed to create Tasks client: %w", err)
	}
	return client, nil
}

// taskListIDFromArgs reads the optional taskListId argument, falling back to
// the user's default list
func taskListIDFromArgs(args map[string]interface{}) string {
	return common.StringArg(args, "taskListId", tasks.DefaultTaskList)
}

// dueArg validates an optional RFC 3339 due-date argument and returns it
// verbatim. The Tasks API takes the timestamp as a string, so the original
// text is kept rather than a reformatted time.
func dueArg(args map[string]interface{}, key string) (string, error) {
	s := common.StringArg(args, key, "")
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return "", fmt.Errorf("invalid %s format: %v", key, err)
	}
	return s, nil
}

// RegisterTasksTools registers all Tasks-related tools with the MCP server
func RegisterTasksTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerTaskListTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task list tools: %w", err)
	}
	if err := registerTaskTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}
	return nil
}

// registerTaskListTools registers task list management tools
func registerTaskListTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("tasks_list_task_lists",
		mcp.WithDescription("List all task lists for the authenticated user"),
	), common.InstrumentedToolHandlerWithService(
		"tasks_list_task_lists", "tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			lists, err := client.ListTaskLists(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list task lists: %v", err)), nil
			}

			result, _ := json.MarshalIndent(lists, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("tasks_get_task_list",
		mcp.WithDescription("Get details of a specific task list"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_get_task_list", "tasks", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			taskList, err := client.GetTaskList(ctx, taskListIDFromArgs(request.GetArguments()))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get task list: %v", err)), nil
			}

			result, _ := json.MarshalIndent(taskList, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("tasks_create_task_list",
		mcp.WithDescription("Create a new task list"),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the new task list")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_create_task_list", "tasks", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			title, err := common.RequiredStringArg(request.GetArguments(), "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			taskList, err := client.CreateTaskList(ctx, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create task list: %v", err)), nil
			}

			result, _ := json.MarshalIndent(taskList, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task list created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("tasks_update_task_list",
		mcp.WithDescription("Update a task list's title"),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list to update")),
		mcp.WithString("title", mcp.Required(), mcp.Description("The new title for the task list")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_update_task_list", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskListID, err := common.RequiredStringArg(args, "taskListId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			title, err := common.RequiredStringArg(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			taskList, err := client.UpdateTaskList(ctx, taskListID, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task list: %v", err)), nil
			}

			result, _ := json.MarshalIndent(taskList, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task list updated successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("tasks_delete_task_list",
		mcp.WithDescription("Delete a task list, including all tasks in it"),
		mcp.WithString("taskListId", mcp.Required(), mcp.Description("The ID of the task list to delete")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_delete_task_list", "tasks", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			taskListID, err := common.RequiredStringArg(request.GetArguments(), "taskListId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteTaskList(ctx, taskListID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task list: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task list %s deleted successfully", taskListID)), nil
		}))

	return nil
}

// registerTaskTools registers task management tools
func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	s.AddTool(mcp.NewTool("tasks_list_tasks",
		mcp.WithDescription("List tasks in a task list with optional filters"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithBoolean("showCompleted", mcp.Description("Include completed tasks (default: false)")),
		mcp.WithString("dueMin", mcp.Description("Only return tasks with due date after this time (RFC3339 format)")),
		mcp.WithString("dueMax", mcp.Description("Only return tasks with due date before this time (RFC3339 format)")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_list_tasks", "tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			dueMin, _, err := common.TimeArg(args, "dueMin")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			dueMax, _, err := common.TimeArg(args, "dueMax")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tasksList, err := client.ListTasks(ctx, taskListIDFromArgs(args), common.BoolArg(args, "showCompleted"), dueMin, dueMax)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
			}

			result, _ := json.MarshalIndent(tasksList, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	s.AddTool(mcp.NewTool("tasks_get_task",
		mcp.WithDescription("Get details of a specific task"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to retrieve")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_get_task", "tasks", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskID, err := common.RequiredStringArg(args, "taskId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.GetTask(ctx, taskListIDFromArgs(args), taskID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if readOnly {
		return nil
	}

	s.AddTool(mcp.NewTool("tasks_create_task",
		mcp.WithDescription("Create a new task in a task list"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("title", mcp.Required(), mcp.Description("The title of the task")),
		mcp.WithString("notes", mcp.Description("Notes or description for the task")),
		mcp.WithString("due", mcp.Description("Due date for the task (RFC3339 format)")),
		mcp.WithString("parent", mcp.Description("Parent task ID to create a subtask")),
		mcp.WithString("previous", mcp.Description("Previous sibling task ID for positioning")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_create_task", "tasks", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			title, err := common.RequiredStringArg(args, "title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			due, err := dueArg(args, "due")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var dueTime time.Time
			if due != "" {
				dueTime, _ = time.Parse(time.RFC3339, due)
			}
			input := tasks.TaskInput{
				Title:    title,
				Notes:    common.StringArg(args, "notes", ""),
				Due:      dueTime,
				Parent:   common.StringArg(args, "parent", ""),
				Previous: common.StringArg(args, "previous", ""),
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.CreateTask(ctx, taskListIDFromArgs(args), input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task created successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("tasks_update_task",
		mcp.WithDescription("Update an existing task. Only the provided fields are changed."),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to update")),
		mcp.WithString("title", mcp.Description("New title for the task")),
		mcp.WithString("notes", mcp.Description("New notes for the task")),
		mcp.WithString("due", mcp.Description("New due date (RFC3339 format)")),
		mcp.WithString("status", mcp.Description("New status: 'needsAction' or 'completed'")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_update_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskID, err := common.RequiredStringArg(args, "taskId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			due, err := dueArg(args, "due")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			status := common.StringArg(args, "status", "")
			if status != "" && status != "needsAction" && status != "completed" {
				return mcp.NewToolResultError("status must be 'needsAction' or 'completed'"), nil
			}

			var dueTime time.Time
			if due != "" {
				dueTime, _ = time.Parse(time.RFC3339, due)
			}
			input := tasks.TaskInput{
				Title:  common.StringArg(args, "title", ""),
				Notes:  common.StringArg(args, "notes", ""),
				Due:    dueTime,
				Status: status,
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.UpdateTask(ctx, taskListIDFromArgs(args), taskID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task updated successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("tasks_complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to complete")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_complete_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskID, err := common.RequiredStringArg(args, "taskId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.CompleteTask(ctx, taskListIDFromArgs(args), taskID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task completed: %s (%s)", task.Title, task.ID)), nil
		}))

	s.AddTool(mcp.NewTool("tasks_delete_task",
		mcp.WithDescription("Delete a task from a task list"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to delete")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_delete_task", "tasks", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskID, err := common.RequiredStringArg(args, "taskId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteTask(ctx, taskListIDFromArgs(args), taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully", taskID)), nil
		}))

	s.AddTool(mcp.NewTool("tasks_move_task",
		mcp.WithDescription("Move a task to a different position, or make it a subtask of another task"),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("The ID of the task to move")),
		mcp.WithString("parent", mcp.Description("New parent task ID (omit to move to top level)")),
		mcp.WithString("previous", mcp.Description("New previous sibling task ID (omit to move to first position)")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_move_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			taskID, err := common.RequiredStringArg(args, "taskId")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.MoveTask(ctx, taskListIDFromArgs(args), taskID,
				common.StringArg(args, "parent", ""), common.StringArg(args, "previous", ""))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to move task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task moved successfully:\n%s", string(result))), nil
		}))

	s.AddTool(mcp.NewTool("tasks_clear_completed",
		mcp.WithDescription("Clear all completed tasks from a task list. Cleared tasks are hidden from default listings."),
		mcp.WithString("taskListId", mcp.Description("The ID of the task list (default: '@default' for the default list)")),
	), common.InstrumentedToolHandlerWithService(
		"tasks_clear_completed", "tasks", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			taskListID := taskListIDFromArgs(request.GetArguments())

			client, err := getTasksClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.ClearCompletedTasks(ctx, taskListID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to clear completed tasks: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Completed tasks cleared from task list %s", taskListID)), nil
		}))

	return nil
}
