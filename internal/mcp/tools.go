package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ambrogio-dev/ambrogio/internal/dates"
	"github.com/ambrogio-dev/ambrogio/internal/slugs"
	"github.com/ambrogio-dev/ambrogio/internal/todo"
)

const numberDescription = "1-based task number as shown by list_tasks"

func (s *Server) registerTools() {
	s.add(mcp.NewTool("list_projects",
		mcp.WithDescription("List projects in file order with open, done and focus-session counts."),
	), s.handleListProjects)

	s.add(mcp.NewTool("add_project",
		mcp.WithDescription("Create a project. Fails if a project with the same name exists."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
	), s.handleAddProject)

	s.add(mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project with all of its tasks, focus sessions and notes."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
	), s.handleDeleteProject)

	s.add(mcp.NewTool("list_tasks",
		mcp.WithDescription("List open tasks grouped by project. Numbers are global and shift after completions and deletions."),
		mcp.WithBoolean("include_done", mcp.Description("Also return completed tasks (they have no number)")),
	), s.handleListTasks)

	s.add(mcp.NewTool("add_task",
		mcp.WithDescription("Add an open task to the end of a project."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project name or its slug, e.g. side-quests")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Single-line task description")),
	), s.handleAddTask)

	s.add(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark an open task as done."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description(numberDescription)),
	), s.handleCompleteTask)

	s.add(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete an open task together with its focus sessions and notes."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description(numberDescription)),
	), s.handleDeleteTask)

	s.add(mcp.NewTool("add_note",
		mcp.WithDescription("Attach a note to an open task."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description(numberDescription)),
		mcp.WithString("text", mcp.Required(), mcp.Description("Single-line note text")),
	), s.handleAddNote)

	s.add(mcp.NewTool("log_focus_session",
		mcp.WithDescription("Record a focus session against an open task."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description(numberDescription)),
		mcp.WithString("started_at", mcp.Description("Start time as YYYY-MM-DD HH:MM (default: now)")),
		mcp.WithBoolean("cancelled", mcp.Description("Whether the session was cut short")),
	), s.handleLogFocusSession)
}

func (s *Server) add(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, req)
		s.logger.Debug("tool call", "tool", tool.Name, "error", err, "tool_error", result != nil && result.IsError)
		return result, err
	})
}

func (s *Server) handleListProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.store.Summaries()
	if err != nil {
		return storeError(err), nil
	}
	if summaries == nil {
		summaries = []todo.ProjectSummary{}
	}
	return jsonResult(map[string]any{"projects": summaries})
}

func (s *Server) handleAddProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requiredString(req, "name")
	if errResult != nil {
		return errResult, nil
	}
	if err := s.store.AddProject(name); err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added project: %s", strings.TrimSpace(name))), nil
}

func (s *Server) handleDeleteProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requiredString(req, "name")
	if errResult != nil {
		return errResult, nil
	}
	name, err := s.resolveProject(name)
	if err != nil {
		return storeError(err), nil
	}
	if err := s.store.DeleteProject(name); err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted project: %s", name)), nil
}

type taskView struct {
	Number      int    `json:"number,omitempty"`
	Description string `json:"description"`
	Done        bool   `json:"done,omitempty"`
}

type groupView struct {
	Project string     `json:"project"`
	Tasks   []taskView `json:"tasks"`
}

func (s *Server) handleListTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		tasks []todo.Task
		err   error
	)
	if boolArg(req, "include_done") {
		tasks, err = s.store.LoadAll()
	} else {
		tasks, err = s.store.OpenTasks()
	}
	if err != nil {
		return storeError(err), nil
	}

	groups := make([]groupView, 0)
	for _, g := range todo.GroupByProject(tasks) {
		view := groupView{Project: g.Project}
		for _, t := range g.Tasks {
			tv := taskView{Description: t.Description, Done: t.Done}
			if !t.Done {
				tv.Number = t.Number()
			}
			view.Tasks = append(view.Tasks, tv)
		}
		groups = append(groups, view)
	}
	return jsonResult(map[string]any{"groups": groups})
}

func (s *Server) handleAddTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, errResult := requiredString(req, "project")
	if errResult != nil {
		return errResult, nil
	}
	description, errResult := requiredString(req, "description")
	if errResult != nil {
		return errResult, nil
	}
	project, err := s.resolveProject(project)
	if err != nil {
		return storeError(err), nil
	}
	if err := s.store.AddTask(project, description); err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added task to %s: %s", project, strings.TrimSpace(description))), nil
}

// resolveProject accepts a project's slug as well as its exact name.
func (s *Server) resolveProject(name string) (string, error) {
	projects, err := s.store.Projects()
	if err != nil {
		return "", err
	}
	return slugs.Resolve(name, projects), nil
}

func (s *Server) handleCompleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := taskIndex(req)
	if errResult != nil {
		return errResult, nil
	}
	task, err := s.store.Complete(index)
	if err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Completed: %s", task.Description)), nil
}

func (s *Server) handleDeleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := taskIndex(req)
	if errResult != nil {
		return errResult, nil
	}
	task, err := s.store.Delete(index)
	if err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted: %s", task.Description)), nil
}

func (s *Server) handleAddNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := taskIndex(req)
	if errResult != nil {
		return errResult, nil
	}
	text, errResult := requiredString(req, "text")
	if errResult != nil {
		return errResult, nil
	}
	task, err := s.store.AddNote(index, text)
	if err != nil {
		return storeError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added note to: %s", task.Description)), nil
}

func (s *Server) handleLogFocusSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, errResult := taskIndex(req)
	if errResult != nil {
		return errResult, nil
	}
	startedAt, err := dates.ParseStamp(stringArg(req, "started_at"), s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cancelled := boolArg(req, "cancelled")

	task, err := s.store.AddFocusRecord(index, startedAt, cancelled)
	if err != nil {
		return storeError(err), nil
	}
	status := "focus session"
	if cancelled {
		status = "cancelled focus session"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Logged %s at %s for: %s",
		status, startedAt.Format(dates.StampLayout), task.Description)), nil
}

func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := arguments(req)[key].(string)
	return v
}

func boolArg(req mcp.CallToolRequest, key string) bool {
	switch v := arguments(req)[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

func requiredString(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v := stringArg(req, key)
	if strings.TrimSpace(v) == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s is required", key))
	}
	return v, nil
}

// taskIndex converts the 1-based "number" argument to a global open-index.
func taskIndex(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	var n float64
	switch v := arguments(req)["number"].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case string:
		if _, err := fmt.Sscan(v, &n); err != nil {
			return 0, mcp.NewToolResultError(fmt.Sprintf("number must be an integer, got %q", v))
		}
	case nil:
		return 0, mcp.NewToolResultError("number is required")
	default:
		return 0, mcp.NewToolResultError(fmt.Sprintf("number must be an integer, got %v", v))
	}
	if n != math.Trunc(n) || n < 1 {
		return 0, mcp.NewToolResultError(fmt.Sprintf("number must be a positive integer, got %v", n))
	}
	return int(n) - 1, nil
}

func storeError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
