package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

// DueDateLayout is the only date form the planner stores.
const DueDateLayout = "2006-01-02"

// ParseSpec parses the task entry syntax "title::duration::priority::due".
// Missing fields fall back to defaults, and so do numbers that fail to
// parse; lists have always been entered forgivingly. A blank title or a
// malformed due date is rejected.
func ParseSpec(spec string) (Task, error) {
	parts := strings.Split(spec, "::")

	title := strings.TrimSpace(parts[0])
	if title == "" {
		return Task{}, fmt.Errorf("%w: title must not be empty", terrors.ErrInvalidTaskSpec)
	}

	task := Task{
		Title:    title,
		Duration: DefaultDuration,
		Category: DefaultCategory,
		Priority: DefaultPriority,
	}

	if len(parts) > 1 {
		if d, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			task.Duration = d
		}
	}
	if len(parts) > 2 {
		if p, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			task.Priority = p
		}
	}
	if len(parts) > 3 {
		due := strings.TrimSpace(parts[3])
		if due != "" {
			if err := ValidateDueDate(due); err != nil {
				return Task{}, err
			}
			task.DueDate = due
		}
	}

	return task, nil
}

// ValidateDueDate checks the YYYY-MM-DD form used throughout the planner.
func ValidateDueDate(date string) error {
	if _, err := time.Parse(DueDateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", terrors.ErrInvalidDueDate, date)
	}
	return nil
}

// IsOverdue reports whether the task's due date lies before today.
// Tasks without a due date are never overdue.
func IsOverdue(task Task, now time.Time) bool {
	if task.DueDate == "" || task.Completed {
		return false
	}
	due, err := time.ParseInLocation(DueDateLayout, task.DueDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}
