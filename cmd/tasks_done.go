package cmd

import (
	"context"
	"strconv"

	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Long: `Marks a pending task as completed, or a completed task as pending
again.

Examples:
  tosk tasks done 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks done command")

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("Task ID must be a number, got %q", args[0])
		}

		spinner, cleanup := startSpinner("Updating task...", verbose)
		defer cleanup()

		result, err := workflows.ToggleTask(context.Background(), workflows.ToggleTaskOptions{ID: id})
		if err != nil {
			spinner.FinalMSG = formatTaskLookupError(err, id)
			if isTaskLookupUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Toggled task %d to completed=%t", result.Task.ID, result.Task.Completed)
		if result.Task.Completed {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Completed [" + strconv.Itoa(result.Task.ID) + "] " +
				ui.Highlight.Sprint(result.Task.Title)
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Reopened [" + strconv.Itoa(result.Task.ID) + "] " +
				ui.Highlight.Sprint(result.Task.Title)
		}
		return nil
	},
}
