package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <spec>...",
	Short: "Add one or more tasks",
	Long: `Adds tasks to the workspace task list.

Each spec is "title::duration::priority::due" where everything after the
title is optional. Duration is in minutes (default 60), priority is 1-3
(default 1), and the due date is YYYY-MM-DD.

Examples:
  tosk tasks add "Write weekly plan"
  tosk tasks add "Review budget::30::2"
  tosk tasks add "File taxes::120::3::2026-04-15" "Call accountant::15"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks add command")

		spinner, cleanup := startSpinner("Adding tasks...", verbose)
		defer cleanup()

		var added []string
		for _, spec := range args {
			result, err := workflows.AddTask(context.Background(), workflows.AddTaskOptions{Spec: spec})
			if err != nil {
				spinner.FinalMSG = formatAddError(err, spec, added)
				if isAddUnexpectedError(err) {
					return err
				}
				return nil
			}
			Logger.Debugf("Added task %d: %s", result.Task.ID, result.Task.Title)
			added = append(added, fmt.Sprintf("%s [%d] %s",
				ui.Success.Sprint("✓"), result.Task.ID, ui.Highlight.Sprint(result.Task.Title)))
		}

		spinner.FinalMSG = strings.Join(added, "\n")
		return nil
	},
}

// formatAddError formats an add error for display to the user.
func formatAddError(err error, spec string, added []string) string {
	var msg string
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		msg = ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrInvalidTaskSpec), errors.Is(err, terrors.ErrInvalidDueDate):
		msg = ui.Error.Sprint("✗") + " Could not parse " + ui.Highlight.Sprint(spec) + "\n" +
			ui.Info.Sprint("→") + " Specs look like " + ui.Code.Sprint("title::duration::priority::due") + "\n" +
			ui.Info.Sprint("→") + " " + err.Error()

	default:
		msg = ui.Error.Sprint("✗") + " Failed to add task: " + err.Error()
	}

	if len(added) > 0 {
		msg = strings.Join(added, "\n") + "\n" + msg
	}
	return msg
}

// isAddUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isAddUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized),
		errors.Is(err, terrors.ErrInvalidTaskSpec),
		errors.Is(err, terrors.ErrInvalidDueDate):
		return false
	default:
		return true
	}
}
