package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Long: `Removes a task from the workspace. The remaining tasks are
renumbered so IDs stay contiguous from 1.

Examples:
  tosk tasks delete 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks delete command")

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("Task ID must be a number, got %q", args[0])
		}

		spinner, cleanup := startSpinner("Deleting task...", verbose)
		defer cleanup()

		result, err := workflows.DeleteTask(context.Background(), workflows.DeleteTaskOptions{ID: id})
		if err != nil {
			spinner.FinalMSG = formatTaskLookupError(err, id)
			if isTaskLookupUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Deleted task %d, %d remaining", id, result.Remaining)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Highlight.Sprint(result.Task.Title) +
			fmt.Sprintf(" (%d task(s) left, IDs renumbered)", result.Remaining)
		return nil
	},
}
