package cmd

import (
	"context"
	"errors"
	"fmt"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task list to CSV",
	Long: `Writes the workspace task list to tasks_export.csv at the workspace
root. The export is included in backups once it exists.

Examples:
  tosk tasks export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks export command")

		spinner, cleanup := startSpinner("Exporting tasks...", verbose)
		defer cleanup()

		result, err := workflows.ExportTasks(context.Background(), workflows.ExportOptions{})
		if err != nil {
			if errors.Is(err, terrors.ErrWorkspaceNotInitialized) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No workspace found\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"
				return nil
			}
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to export tasks: " + err.Error()
			return err
		}

		Logger.Debugf("Exported %d tasks to %s", result.Count, result.Path)
		spinner.FinalMSG = ui.Success.Sprint("✓") +
			fmt.Sprintf(" Exported %d task(s) to ", result.Count) + ui.Path.Sprint(result.Path)
		return nil
	},
}
