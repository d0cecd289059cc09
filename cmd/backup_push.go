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

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push workspace files to the remote repository",
	Long: `Uploads the task list, and its CSV export if present, to the backup
repository. Each file is pushed independently: one file failing does not
stop the others.

When an encryption passphrase is configured, files are encrypted before
upload. Otherwise they are uploaded as-is.

Examples:
  tosk backup push`,
	RunE: func(cmd *cobra.Command, args []string) error {
		BackupLogger.Infof("Starting backup push command")

		spinning := !backupVerbose && !backupDebug
		spinner, cleanup := startSpinnerWithFlags("Pushing backup...", backupVerbose, backupDebug)
		defer cleanup()

		opts := workflows.BackupOptions{
			Prompter: backupPrompterFor(spinner, spinning),
			BaseURL:  backupBaseURL,
		}
		result, err := workflows.Backup(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatBackupError(err)
			if isBackupUnexpectedError(err) {
				return err
			}
			return nil
		}

		BackupLogger.Debugf("Push finished: %d pushed, %d skipped, %d failed",
			result.Pushed, result.Skipped, result.Failed)

		msg := formatOutcomes(result.Outcomes)
		if result.Failed > 0 {
			msg += ui.Error.Sprint("✗") + fmt.Sprintf(" Backup finished with %d failure(s)", result.Failed)
			spinner.FinalMSG = msg
			return fmt.Errorf("%d of %d file(s) failed to push", result.Failed, len(result.Outcomes))
		}

		msg += ui.Success.Sprint("✓") + fmt.Sprintf(" Backup complete (%d file(s) pushed as %s)",
			result.Pushed, ui.Highlight.Sprint(result.Device))
		spinner.FinalMSG = msg
		cleanup()
		if !result.Encrypted {
			BackupLogger.WarnfAlways("Backups are not encrypted, run 'tosk config init --reset' to record a passphrase")
		}
		return nil
	},
}

// formatOutcomes renders one status line per file of a backup or restore batch.
func formatOutcomes(outcomes []workflows.FileOutcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		switch o.State {
		case workflows.OutcomePushed:
			b.WriteString(ui.Success.Sprint("✓") + " " + ui.Path.Sprint(o.Local) +
				" pushed to " + o.Remote + "\n")
		case workflows.OutcomeRestored:
			b.WriteString(ui.Success.Sprint("✓") + " " + ui.Path.Sprint(o.Local) +
				" restored from " + o.Remote + "\n")
		case workflows.OutcomeSkipped:
			b.WriteString("- " + o.Local + " skipped " + ui.Muted.Sprint(o.Detail) + "\n")
		case workflows.OutcomeFailed:
			b.WriteString(ui.Error.Sprint("✗") + " " + o.Local + " failed: " + o.Detail + "\n")
		}
	}
	return b.String()
}

// formatBackupError formats errors shared by the backup commands.
func formatBackupError(err error) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		return ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrDecryptionFailed):
		return ui.Error.Sprint("✗") + " Wrong master password or corrupted credential store"

	case errors.Is(err, terrors.ErrMalformedStore):
		return ui.Error.Sprint("✗") + " The credential store could not be read\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk config init") + " to recreate it"

	case errors.Is(err, terrors.ErrMissingCredential):
		return ui.Error.Sprint("✗") + " A required credential was left blank\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk config init") + " and fill in the token, owner, and repository"

	default:
		return ui.Error.Sprint("✗") + " Backup failed: " + err.Error()
	}
}

// isBackupUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isBackupUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized),
		errors.Is(err, terrors.ErrDecryptionFailed),
		errors.Is(err, terrors.ErrMalformedStore),
		errors.Is(err, terrors.ErrMissingCredential):
		return false
	default:
		return true
	}
}
