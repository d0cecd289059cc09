package workflows

import (
	"context"
	"fmt"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/tasks"
)

// AddTaskOptions configures the add workflow.
type AddTaskOptions struct {
	// Spec is the entry string, up to four fields separated by "::":
	// title::duration::priority::due_date. Missing fields take defaults.
	Spec string
}

// AddTaskResult contains the outcome of an add operation.
type AddTaskResult struct {
	// Task is the newly created task with its assigned ID.
	Task tasks.Task

	// Total is the list length after the add.
	Total int
}

// AddTask parses an entry spec and appends the task to the list.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrInvalidTaskSpec if the entry has a blank title.
// Returns ErrInvalidDueDate if the due date is not YYYY-MM-DD.
func AddTask(ctx context.Context, opts AddTaskOptions) (*AddTaskResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	task, err := tasks.ParseSpec(opts.Spec)
	if err != nil {
		return nil, err
	}

	path := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	list = tasks.Add(list, task)
	if err := tasks.Save(path, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	added := list[len(list)-1]

	entry := history.ForDevice(history.OpAdd)
	entry.TaskID = added.ID
	entry.Title = added.Title
	history.Log(entry)

	return &AddTaskResult{Task: added, Total: len(list)}, nil
}

// EditTaskOptions configures the edit workflow. Nil fields keep the
// task's current value.
type EditTaskOptions struct {
	ID       int
	Title    *string
	Duration *int
	Category *string
	Priority *int
	DueDate  *string
}

// EditTaskResult contains the outcome of an edit operation.
type EditTaskResult struct {
	// Task is the task after the edit.
	Task tasks.Task
}

// EditTask updates the fields of an existing task.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrTaskNotFound if no task has the given ID.
// Returns ErrInvalidDueDate if a new due date is not YYYY-MM-DD.
func EditTask(ctx context.Context, opts EditTaskOptions) (*EditTaskResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	path := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	task, err := tasks.Find(list, opts.ID)
	if err != nil {
		return nil, err
	}

	if opts.Title != nil && *opts.Title != "" {
		task.Title = *opts.Title
	}
	if opts.Duration != nil {
		task.Duration = *opts.Duration
	}
	if opts.Category != nil && *opts.Category != "" {
		task.Category = *opts.Category
	}
	if opts.Priority != nil {
		task.Priority = *opts.Priority
	}
	if opts.DueDate != nil {
		if *opts.DueDate != "" {
			if err := tasks.ValidateDueDate(*opts.DueDate); err != nil {
				return nil, err
			}
		}
		task.DueDate = *opts.DueDate
	}

	if err := tasks.Save(path, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	entry := history.ForDevice(history.OpEdit)
	entry.TaskID = task.ID
	entry.Title = task.Title
	history.Log(entry)

	return &EditTaskResult{Task: *task}, nil
}

// ToggleTaskOptions configures the done workflow.
type ToggleTaskOptions struct {
	ID int
}

// ToggleTaskResult contains the outcome of a toggle operation.
type ToggleTaskResult struct {
	// Task is the task after the toggle.
	Task tasks.Task
}

// ToggleTask flips the completion flag of a task.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrTaskNotFound if no task has the given ID.
func ToggleTask(ctx context.Context, opts ToggleTaskOptions) (*ToggleTaskResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	path := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	task, err := tasks.Toggle(list, opts.ID)
	if err != nil {
		return nil, err
	}

	if err := tasks.Save(path, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	entry := history.ForDevice(history.OpToggle)
	entry.TaskID = task.ID
	entry.Title = task.Title
	history.Log(entry)

	return &ToggleTaskResult{Task: *task}, nil
}

// SetDueDateOptions configures the due workflow.
type SetDueDateOptions struct {
	ID int

	// DueDate in YYYY-MM-DD form. Empty clears the due date.
	DueDate string
}

// SetDueDateResult contains the outcome of a due-date change.
type SetDueDateResult struct {
	// Task is the task after the change.
	Task tasks.Task

	// Cleared indicates the due date was removed rather than set.
	Cleared bool
}

// SetDueDate sets or clears the due date of a task.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrTaskNotFound if no task has the given ID.
// Returns ErrInvalidDueDate if the date is not YYYY-MM-DD.
func SetDueDate(ctx context.Context, opts SetDueDateOptions) (*SetDueDateResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	if opts.DueDate != "" {
		if err := tasks.ValidateDueDate(opts.DueDate); err != nil {
			return nil, err
		}
	}

	path := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	task, err := tasks.Find(list, opts.ID)
	if err != nil {
		return nil, err
	}
	task.DueDate = opts.DueDate

	if err := tasks.Save(path, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	entry := history.ForDevice(history.OpSetDueDate)
	entry.TaskID = task.ID
	entry.Title = task.Title
	history.Log(entry)

	return &SetDueDateResult{Task: *task, Cleared: opts.DueDate == ""}, nil
}

// DeleteTaskOptions configures the delete workflow.
type DeleteTaskOptions struct {
	ID int
}

// DeleteTaskResult contains the outcome of a delete operation.
type DeleteTaskResult struct {
	// Task is the deleted task as it was before removal.
	Task tasks.Task

	// Remaining is the list length after the delete and renumber.
	Remaining int
}

// DeleteTask removes a task and renumbers the remaining ones so IDs
// stay contiguous from 1.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrTaskNotFound if no task has the given ID.
func DeleteTask(ctx context.Context, opts DeleteTaskOptions) (*DeleteTaskResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	path := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	deleted, err := tasks.Find(list, opts.ID)
	if err != nil {
		return nil, err
	}
	removed := *deleted

	list, err = tasks.Delete(list, opts.ID)
	if err != nil {
		return nil, err
	}

	if err := tasks.Save(path, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	entry := history.ForDevice(history.OpDelete)
	entry.TaskID = removed.ID
	entry.Title = removed.Title
	history.Log(entry)

	return &DeleteTaskResult{Task: removed, Remaining: len(list)}, nil
}

// ListTasksOptions configures the list workflow.
type ListTasksOptions struct {
	// SortKey orders the output: "id" (default), "due", or "priority".
	SortKey string
}

// ListTasksResult contains the task list and its summary counts.
type ListTasksResult struct {
	Tasks     []tasks.Task
	Total     int
	Completed int
}

// ListTasks loads the task list in the requested order.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
func ListTasks(ctx context.Context, opts ListTasksOptions) (*ListTasksResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	list, err := tasks.Load(configs.ToskWorkspaceSettings.TaskFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	if err := tasks.SortBy(list, opts.SortKey); err != nil {
		return nil, err
	}

	total, completed := tasks.Summary(list)
	return &ListTasksResult{Tasks: list, Total: total, Completed: completed}, nil
}
