package workflows

import (
	"context"
	"fmt"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/tasks"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// No options currently needed. Included for consistency.
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// Path is where the CSV was written.
	Path string

	// Count is the number of exported tasks.
	Count int
}

// ExportTasks writes the task list to the workspace CSV file, which is
// also the second file the backup commands push.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
func ExportTasks(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	list, err := tasks.Load(configs.ToskWorkspaceSettings.TaskFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	exportPath := configs.ToskWorkspaceSettings.ExportFilePath
	if err := tasks.ExportCSV(exportPath, list); err != nil {
		return nil, fmt.Errorf("writing CSV export: %w", err)
	}

	entry := history.ForDevice(history.OpExportCSV)
	entry.Count = len(list)
	entry.File = configs.ExportFileName
	history.Log(entry)

	return &ExportResult{Path: exportPath, Count: len(list)}, nil
}
