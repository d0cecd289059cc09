package workflows

import (
	"context"

	"github.com/ctsdownloads/tosk-task-manager/internal/history"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Limit caps the number of entries returned, keeping the newest.
	// Zero means all entries.
	Limit int
}

// HistoryResult contains the recorded planner history.
type HistoryResult struct {
	// Entries in chronological order, oldest first.
	Entries []history.Entry

	// Total is the number of entries on disk, before the limit.
	Total int
}

// ShowHistory reads the workspace history log.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
func ShowHistory(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	entries, err := history.ReadEntries()
	if err != nil {
		return nil, err
	}

	total := len(entries)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}

	return &HistoryResult{Entries: entries, Total: total}, nil
}
