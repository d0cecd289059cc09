package workflows

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/tasks"
)

// ImportCSVOptions configures the CSV import workflow.
type ImportCSVOptions struct {
	// Path of the CSV file to import. If empty, the workspace export
	// file is used.
	Path string
}

// ImportCSVResult contains the outcome of a CSV import.
type ImportCSVResult struct {
	// Path is the file that was imported.
	Path string

	// Count is the number of imported tasks.
	Count int
}

// ImportCSVTasks replaces the task list with the contents of a CSV
// file. This is the inverse of ExportTasks: the whole list is swapped,
// not merged, so a CSV round trip reproduces the list exactly.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrLocalFileMissing if the CSV file does not exist.
func ImportCSVTasks(ctx context.Context, opts ImportCSVOptions) (*ImportCSVResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		path = configs.ToskWorkspaceSettings.ExportFilePath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", terrors.ErrLocalFileMissing, path)
	}

	list, err := tasks.ImportCSV(path)
	if err != nil {
		return nil, fmt.Errorf("reading CSV import: %w", err)
	}

	if err := tasks.Save(configs.ToskWorkspaceSettings.TaskFilePath, list); err != nil {
		return nil, fmt.Errorf("saving task list: %w", err)
	}

	entry := history.ForDevice(history.OpImportCSV)
	entry.Count = len(list)
	entry.File = filepath.Base(path)
	history.Log(entry)

	return &ImportCSVResult{Path: path, Count: len(list)}, nil
}

// ImportTextOptions configures the plain-text import workflow.
type ImportTextOptions struct {
	// Path of the text file to import. If empty, Data is used instead,
	// which lets the CLI accept piped input.
	Path string

	// Data is the raw text when no path is given.
	Data []byte
}

// ImportTextResult contains the outcome of a text import.
type ImportTextResult struct {
	// Source names where the lines came from, for display.
	Source string

	// Count is the number of appended tasks.
	Count int

	// Skipped is the number of lines that did not parse as entry specs.
	Skipped int

	// Total is the list length after the import.
	Total int
}

// ImportTextTasks appends one task per non-empty line of a text file.
// Each line is a full entry spec (title::duration::priority::due), so a
// plain list of titles works as well. Unlike CSV import, existing tasks
// are kept.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns ErrLocalFileMissing if a path was given and does not exist.
func ImportTextTasks(ctx context.Context, opts ImportTextOptions) (*ImportTextResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	data := opts.Data
	source := "stdin"
	if opts.Path != "" {
		raw, err := os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", terrors.ErrLocalFileMissing, opts.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading import file: %w", err)
		}
		data = raw
		source = opts.Path
	}

	taskPath := configs.ToskWorkspaceSettings.TaskFilePath
	list, err := tasks.Load(taskPath)
	if err != nil {
		return nil, fmt.Errorf("loading task list: %w", err)
	}

	added := 0
	skipped := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		task, err := tasks.ParseSpec(string(line))
		if err != nil {
			skipped++
			continue
		}
		list = tasks.Add(list, task)
		added++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading import lines: %w", err)
	}

	if added > 0 {
		if err := tasks.Save(taskPath, list); err != nil {
			return nil, fmt.Errorf("saving task list: %w", err)
		}
	}

	entry := history.ForDevice(history.OpImportText)
	entry.Count = added
	entry.File = filepath.Base(source)
	history.Log(entry)

	return &ImportTextResult{
		Source:  source,
		Count:   added,
		Skipped: skipped,
		Total:   len(list),
	}, nil
}
