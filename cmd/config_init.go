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

var configInitReset bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitReset, "reset", false, "discard the existing store and enter every credential again")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitReset = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or refresh the credential store",
	Long: `Creates the encrypted credential store, or fills in whatever an
existing store is missing.

You are asked for a GitHub access token, the repository owner and name,
and an optional data-encryption passphrase. Leaving the passphrase
empty means backups are uploaded unencrypted. Everything is sealed
under a master password that is asked for on every backup command and
never written to disk.

Recorded credentials are kept as they are. To replace one, run with
--reset and enter everything again.

Examples:
  tosk config init
  tosk config init --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config init command")

		if configInitReset {
			ConfigLogger.WarnfUser("Using --reset discards any recorded credentials - you will be asked for everything again")
		}

		opts := workflows.CredentialsOptions{
			Prompter: configPrompter,
			Reset:    configInitReset,
		}
		result, err := workflows.SetupCredentials(context.Background(), opts)
		if err != nil {
			msg := formatCredentialsError(err)
			fmt.Println(msg)
			if isCredentialsUnexpectedError(err) {
				return err
			}
			return nil
		}

		ConfigLogger.Debugf("Credential store ready at %s", result.Path)

		if result.Created {
			fmt.Println(ui.Success.Sprint("✓") + " Credential store created at " + ui.Path.Sprint(result.Path))
		} else {
			fmt.Println(ui.Success.Sprint("✓") + " Credential store verified at " + ui.Path.Sprint(result.Path))
		}
		fmt.Println(ui.Info.Sprint("→") + " Backups go to " + ui.Highlight.Sprint(result.Repository))
		if result.Encrypted {
			fmt.Println(ui.Info.Sprint("→") + " Backup payloads are encrypted")
		} else {
			fmt.Println(ui.Warning.Sprint("⚠") + " No passphrase recorded, backups travel unencrypted")
		}
		return nil
	},
}

// formatCredentialsError formats a config init error for display to the user.
func formatCredentialsError(err error) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceNotInitialized):
		return ui.Error.Sprint("✗") + " No workspace found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"

	case errors.Is(err, terrors.ErrDecryptionFailed):
		return ui.Error.Sprint("✗") + " Wrong master password or corrupted credential store\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk config init --reset") + " to start over"

	case errors.Is(err, terrors.ErrMalformedStore):
		return ui.Error.Sprint("✗") + " The credential store could not be read\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk config init --reset") + " to start over"

	case errors.Is(err, terrors.ErrMissingCredential):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The token, owner, and repository are required"

	default:
		return ui.Error.Sprint("✗") + " Failed to set up credentials: " + err.Error()
	}
}

// isCredentialsUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isCredentialsUnexpectedError(err error) bool {
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
