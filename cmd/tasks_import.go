package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var importCSV bool

func init() {
	importCmd.Flags().BoolVar(&importCSV, "csv", false, "treat the input as CSV regardless of file name")
}

// resetImportCommandState resets the import command's global state for testing.
func resetImportCommandState() {
	importCSV = false
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tasks from a file",
	Long: `Imports tasks from a file, or from stdin when the file is "-".

Files ending in .csv (or any input with --csv) are read in the export
format and replace the task list. Anything else is read as plain text,
one task spec per line, and appended to the existing list. Lines that
fail to parse are skipped.

Examples:
  tosk tasks import tasks_export.csv
  tosk tasks import weekly_plan.txt
  cat plan.txt | tosk tasks import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks import command")

		source := args[0]
		asCSV := importCSV || strings.HasSuffix(strings.ToLower(source), ".csv")

		var stdin []byte
		if source == "-" {
			if asCSV {
				return Logger.ErrorfAndReturn("CSV import requires a file, not stdin")
			}
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read stdin: %v", err)
			}
			stdin = data
		}

		spinner, cleanup := startSpinner("Importing tasks...", verbose)
		defer cleanup()

		if asCSV {
			result, err := workflows.ImportCSVTasks(context.Background(), workflows.ImportCSVOptions{Path: source})
			if err != nil {
				spinner.FinalMSG = formatImportError(err, source)
				if isImportUnexpectedError(err) {
					return err
				}
				return nil
			}
			Logger.Debugf("Imported %d tasks from %s", result.Count, result.Path)
			spinner.FinalMSG = ui.Success.Sprint("✓") +
				fmt.Sprintf(" Imported %d task(s) from ", result.Count) + ui.Path.Sprint(result.Path) + "\n" +
				ui.Warning.Sprint("⚠") + " The previous task list was replaced"
			return nil
		}

		opts := workflows.ImportTextOptions{}
		if source == "-" {
			opts.Data = stdin
		} else {
			opts.Path = source
		}

		result, err := workflows.ImportTextTasks(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatImportError(err, source)
			if isImportUnexpectedError(err) {
				return err
			}
			return nil
		}

		Logger.Debugf("Added %d tasks from %s, skipped %d lines", result.Count, result.Source, result.Skipped)
		msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Added %d task(s) from %s (%d total)",
			result.Count, result.Source, result.Total)
		if result.Skipped > 0 {
			msg += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" Skipped %d line(s) that could not be parsed", result.Skipped)
		}
		spinner.FinalMSG = msg
		return nil
	},
}

// formatImportError formats an import error for display to the user.
func formatImportError(err error, source string) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		return ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrLocalFileMissing):
		return ui.Error.Sprint("✗") + " " + ui.Path.Sprint(source) + " does not exist"

	default:
		return ui.Error.Sprint("✗") + " Failed to import tasks: " + err.Error()
	}
}

// isImportUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isImportUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized),
		errors.Is(err, terrors.ErrLocalFileMissing):
		return false
	default:
		return true
	}
}
