package cmd

import (
	"context"
	"strconv"

	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <id> [date]",
	Short: "Set or clear a task's due date",
	Long: `Sets a task's due date to the given YYYY-MM-DD date. Omitting the
date clears it.

Examples:
  tosk tasks due 3 2026-09-01
  tosk tasks due 3             # clear the due date`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks due command")

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("Task ID must be a number, got %q", args[0])
		}

		date := ""
		if len(args) == 2 {
			date = args[1]
		}

		spinner, cleanup := startSpinner("Updating task...", verbose)
		defer cleanup()

		result, err := workflows.SetDueDate(context.Background(), workflows.SetDueDateOptions{ID: id, DueDate: date})
		if err != nil {
			spinner.FinalMSG = formatTaskLookupError(err, id)
			if isTaskLookupUnexpectedError(err) {
				return err
			}
			return nil
		}

		if result.Cleared {
			Logger.Debugf("Cleared due date of task %d", result.Task.ID)
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Cleared due date of [" +
				strconv.Itoa(result.Task.ID) + "] " + ui.Highlight.Sprint(result.Task.Title)
			return nil
		}

		Logger.Debugf("Set due date of task %d to %s", result.Task.ID, result.Task.DueDate)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " [" + strconv.Itoa(result.Task.ID) + "] " +
			ui.Highlight.Sprint(result.Task.Title) + " is due " + result.Task.DueDate
		return nil
	},
}
