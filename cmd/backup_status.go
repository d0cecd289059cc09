package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backup configuration and remote state",
	Long: `Shows the workspace backup settings and, when credentials are
configured, whether each mapped file exists on the remote and under
which version. The master password is required to read the store;
missing credentials are never solicited here.

Examples:
  tosk backup status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		BackupLogger.Infof("Starting backup status command")

		spinning := !backupVerbose && !backupDebug
		spinner, cleanup := startSpinnerWithFlags("Checking backup status...", backupVerbose, backupDebug)
		defer cleanup()

		opts := workflows.StatusOptions{
			Prompter: backupPrompterFor(spinner, spinning),
			BaseURL:  backupBaseURL,
		}
		result, err := workflows.BackupStatus(context.Background(), opts)
		if err != nil {
			spinner.FinalMSG = formatBackupError(err)
			if isBackupUnexpectedError(err) {
				return err
			}
			return nil
		}

		BackupLogger.Debugf("Status loaded: configured=%t, %d remote files checked",
			result.Configured, len(result.Files))

		var b strings.Builder
		b.WriteString(fmt.Sprintf("Workspace:  %s (device %s)\n", result.WorkspaceName, result.Device))
		b.WriteString(fmt.Sprintf("Branch:     %s\n", result.Branch))
		b.WriteString(fmt.Sprintf("Prefix:     %s\n", result.Prefix))

		if !result.Configured {
			b.WriteString("\n" + ui.Warning.Sprint("⚠") + " No credential store\n")
			b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk config init") + " to configure backups")
			spinner.FinalMSG = b.String()
			return nil
		}

		b.WriteString(fmt.Sprintf("Repository: %s\n", result.Repository))
		if result.Encrypted {
			b.WriteString("Encryption: enabled\n")
		} else {
			b.WriteString("Encryption: " + ui.Warning.Sprint("disabled (backups travel unencrypted)") + "\n")
		}

		b.WriteString("\n")
		for _, f := range result.Files {
			switch {
			case f.Present:
				b.WriteString(ui.Success.Sprint("✓") + " " + f.Remote + " " +
					ui.Muted.Sprintf("version %.7s", f.SHA) + "\n")
			case f.Detail != "":
				b.WriteString(ui.Error.Sprint("✗") + " " + f.Remote + ": " + f.Detail + "\n")
			default:
				b.WriteString("- " + f.Remote + " not on the remote\n")
			}
		}

		spinner.FinalMSG = strings.TrimRight(b.String(), "\n")
		return nil
	},
}
