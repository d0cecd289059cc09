package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/tasks"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var listSort string

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "id", "sort order: id, due, or priority")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listSort = "id"
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks in the workspace",
	Long: `Displays the workspace task list with a completion summary.

Examples:
  tosk tasks list                 # In ID order
  tosk tasks list --sort due      # Soonest due date first
  tosk tasks list --sort priority # Highest priority first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks list command")

		spinner, cleanup := startSpinner("Loading tasks...", verbose)
		defer cleanup()

		result, err := workflows.ListTasks(context.Background(), workflows.ListTasksOptions{SortKey: listSort})
		if err != nil {
			spinner.FinalMSG = formatListError(err)
			if isListUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Loaded %d tasks", result.Total)

		spinner.FinalMSG = ""
		if result.Total == 0 {
			fmt.Println("No tasks yet.")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint(`tosk tasks add "title"`) + " to add one")
			return nil
		}

		printTaskTable(result.Tasks)
		fmt.Printf("\nTotal: %d | Completed: %d\n", result.Total, result.Completed)
		return nil
	},
}

// printTaskTable renders tasks as aligned columns, one task per line.
func printTaskTable(list []tasks.Task) {
	now := time.Now()
	for _, t := range list {
		box := "[ ]"
		title := t.Title
		if t.Completed {
			box = ui.Done.Sprint("[x]")
			title = ui.Muted.Sprint(title)
		}

		due := ""
		if t.DueDate != "" {
			due = "due " + t.DueDate
			if tasks.IsOverdue(t, now) {
				due = ui.Overdue.Sprint(due)
			}
		}

		fmt.Printf("%3d %s %-32s %4dm  %-12s P%d  %s\n",
			t.ID, box, title, t.Duration, t.Category, t.Priority, due)
	}
}

// formatListError formats a list error for display to the user.
func formatListError(err error) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		return ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrUnknownSortKey):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Valid sort keys are " + ui.Code.Sprint("id") + ", " +
			ui.Code.Sprint("due") + ", and " + ui.Code.Sprint("priority")

	default:
		return ui.Error.Sprint("✗") + " Failed to load tasks: " + err.Error()
	}
}

// isListUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isListUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized),
		errors.Is(err, terrors.ErrUnknownSortKey):
		return false
	default:
		return true
	}
}
