package cmd

import (
	"context"
	"errors"
	"strconv"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	editTitle    string
	editDuration int
	editCategory string
	editPriority int
	editDue      string
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().IntVar(&editDuration, "duration", 0, "new duration in minutes")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category")
	editCmd.Flags().IntVarP(&editPriority, "priority", "p", 0, "new priority (1-3)")
	editCmd.Flags().StringVar(&editDue, "due", "", "new due date (YYYY-MM-DD, empty clears)")
}

// resetEditCommandState resets the edit command's global state for testing.
func resetEditCommandState() {
	editTitle = ""
	editDuration = 0
	editCategory = ""
	editPriority = 0
	editDue = ""
	if editCmd.Flags() != nil {
		editCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing task",
	Long: `Changes fields of an existing task. Only the fields given as flags
change; everything else keeps its current value.

Examples:
  tosk tasks edit 3 --title "Write quarterly plan"
  tosk tasks edit 3 --duration 90 --priority 2
  tosk tasks edit 3 --due ""      # clear the due date`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks edit command")

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("Task ID must be a number, got %q", args[0])
		}

		opts := workflows.EditTaskOptions{ID: id}
		if cmd.Flags().Changed("title") {
			opts.Title = &editTitle
		}
		if cmd.Flags().Changed("duration") {
			opts.Duration = &editDuration
		}
		if cmd.Flags().Changed("category") {
			opts.Category = &editCategory
		}
		if cmd.Flags().Changed("priority") {
			opts.Priority = &editPriority
		}
		if cmd.Flags().Changed("due") {
			opts.DueDate = &editDue
		}

		spinner, cleanup := startSpinner("Updating task...", verbose)
		defer cleanup()

		result, err := workflows.EditTask(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatTaskLookupError(err, id)
			if isTaskLookupUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Updated task %d", result.Task.ID)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated [" + strconv.Itoa(result.Task.ID) + "] " +
			ui.Highlight.Sprint(result.Task.Title)
		return nil
	},
}

// formatTaskLookupError formats errors shared by the commands that address one task by ID.
func formatTaskLookupError(err error, id int) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		return ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrTaskNotFound):
		return ui.Error.Sprint("✗") + " No task with ID " + strconv.Itoa(id) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk tasks list") + " to see task IDs"

	case errors.Is(err, terrors.ErrInvalidDueDate):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to update task: " + err.Error()
	}
}

// isTaskLookupUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isTaskLookupUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized),
		errors.Is(err, terrors.ErrTaskNotFound),
		errors.Is(err, terrors.ErrInvalidDueDate):
		return false
	default:
		return true
	}
}
