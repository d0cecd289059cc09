package cmd

import (
	"context"
	"fmt"

	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Restore workspace files from the remote repository",
	Long: `Downloads the task list, and its CSV export if the remote has one,
from the backup repository. Local files are fully replaced by what the
remote holds; there is no merge.

When an encryption passphrase is configured, downloaded files are
decrypted before being written.

Examples:
  tosk backup pull`,
	RunE: func(cmd *cobra.Command, args []string) error {
		BackupLogger.Infof("Starting backup pull command")

		spinning := !backupVerbose && !backupDebug
		spinner, cleanup := startSpinnerWithFlags("Restoring backup...", backupVerbose, backupDebug)
		defer cleanup()

		opts := workflows.RestoreOptions{
			Prompter: backupPrompterFor(spinner, spinning),
			BaseURL:  backupBaseURL,
		}
		result, err := workflows.Restore(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatBackupError(err)
			if isBackupUnexpectedError(err) {
				return err
			}
			return nil
		}

		BackupLogger.Debugf("Pull finished: %d restored, %d skipped, %d failed",
			result.Restored, result.Skipped, result.Failed)

		msg := formatOutcomes(result.Outcomes)
		if result.Failed > 0 {
			msg += ui.Error.Sprint("✗") + fmt.Sprintf(" Restore finished with %d failure(s)", result.Failed)
			spinner.FinalMSG = msg
			return fmt.Errorf("%d of %d file(s) failed to restore", result.Failed, len(result.Outcomes))
		}

		msg += ui.Success.Sprint("✓") + fmt.Sprintf(" Restore complete (%d file(s) written)", result.Restored)
		spinner.FinalMSG = msg
		return nil
	},
}
