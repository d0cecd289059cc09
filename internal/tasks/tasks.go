package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// Task is one planner entry. The JSON field names are fixed so task
// lists written by other devices keep loading.
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Category  string `json:"category"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date"`
}

// Defaults applied when an entry spec leaves fields out.
const (
	DefaultDuration = 60
	DefaultCategory = "General"
	DefaultPriority = 1
)

// Load reads the task list at path. A missing file is an empty list,
// not an error; the list comes into existence with the first task.
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read task list: %w", err)
	}

	var list []Task
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("task list is not valid JSON: %w", err)
	}
	return list, nil
}

// Save writes the task list to path with two-space indentation, the
// layout existing task lists use.
func Save(path string, list []Task) error {
	if list == nil {
		list = []Task{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode task list: %w", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write task list: %w", err)
	}
	return nil
}

// Add appends a task and assigns it the next sequential ID.
func Add(list []Task, task Task) []Task {
	task.ID = len(list) + 1
	return append(list, task)
}

// Find returns a pointer to the task with the given ID.
func Find(list []Task, id int) (*Task, error) {
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", terrors.ErrTaskNotFound, id)
}

// Delete removes the task with the given ID and renumbers the remainder
// 1..n, so IDs always stay dense.
func Delete(list []Task, id int) ([]Task, error) {
	if _, err := Find(list, id); err != nil {
		return list, err
	}

	remaining := make([]Task, 0, len(list)-1)
	for _, t := range list {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	Renumber(remaining)
	return remaining, nil
}

// Renumber reassigns IDs 1..n in list order.
func Renumber(list []Task) {
	for i := range list {
		list[i].ID = i + 1
	}
}

// Toggle flips the completion state of the task with the given ID and
// returns the task.
func Toggle(list []Task, id int) (*Task, error) {
	task, err := Find(list, id)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	return task, nil
}

// Summary returns the totals shown after listings.
func Summary(list []Task) (total, completed int) {
	total = len(list)
	for _, t := range list {
		if t.Completed {
			completed++
		}
	}
	return total, completed
}

// Sort keys accepted by SortBy.
const (
	SortByID       = "id"
	SortByDueDate  = "due"
	SortByPriority = "priority"
)

// SortBy orders the list for display. Tasks without a due date sort
// after dated ones; higher priorities sort first.
func SortBy(list []Task, key string) error {
	switch key {
	case SortByID, "":
		sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	case SortByDueDate:
		sort.SliceStable(list, func(i, j int) bool {
			if (list[i].DueDate == "") != (list[j].DueDate == "") {
				return list[i].DueDate != ""
			}
			return list[i].DueDate < list[j].DueDate
		})
	case SortByPriority:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Priority > list[j].Priority })
	default:
		return fmt.Errorf("%w %q (valid: id, due, priority)", terrors.ErrUnknownSortKey, key)
	}
	return nil
}
