package cmd

import (
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	backupVerbose bool
	backupDebug   bool
	BackupLogger  logger.Logger

	// Test seams. Production leaves both unset: the workflows fall back
	// to the interactive prompter and the real API endpoint.
	backupPrompter secrets.Prompter
	backupBaseURL  string

	// BackupCmd is the top-level backup command.
	BackupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Back up the workspace to a remote repository",
		Long: `Provides commands for pushing workspace files to a GitHub
repository, restoring them from it, and checking what the remote holds.

Credentials come from the encrypted store (run ` + "`tosk config init`" + ` to
set it up). When an encryption passphrase is configured, files are
encrypted before upload and decrypted after download.

Examples:
  # Push tasks.json and the CSV export (if present)
  tosk backup push

  # Restore both files from the remote
  tosk backup pull

  # Compare local files to what the remote holds
  tosk backup status`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			BackupLogger = logger.Logger{
				Verbose: backupVerbose,
				Debug:   backupDebug,
			}
			BackupLogger.Debugf("Initializing backup command with verbose=%t, debug=%t", backupVerbose, backupDebug)
		},
	}
)

func init() {
	BackupCmd.PersistentFlags().BoolVarP(&backupVerbose, "verbose", "v", false, "enable verbose output")
	BackupCmd.PersistentFlags().BoolVarP(&backupDebug, "debug", "d", false, "enable debug output")

	BackupCmd.AddCommand(pushCmd)
	BackupCmd.AddCommand(pullCmd)
	BackupCmd.AddCommand(statusCmd)
}

// GetBackupCmd returns the BackupCmd for testing.
func GetBackupCmd() *cobra.Command {
	return BackupCmd
}

// ResetBackupState resets all backup command global variables to their default values for testing.
func ResetBackupState() {
	backupVerbose = false
	backupDebug = false
	backupPrompter = nil
	backupBaseURL = ""
	resetBackupCobraFlagState()
}

// resetBackupCobraFlagState resets the flag state for all backup commands to prevent test pollution.
func resetBackupCobraFlagState() {
	if BackupCmd != nil && BackupCmd.Flags() != nil {
		BackupCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetBackupTransport overrides the credential prompter and API base URL for testing.
func SetBackupTransport(baseURL string, p secrets.Prompter) {
	backupBaseURL = baseURL
	backupPrompter = p
}
