package cmd

import (
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// Test seam. Production leaves it unset and the workflow prompts
	// interactively.
	configPrompter secrets.Prompter

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage workspace configuration and credentials",
		Long: `Provides commands for inspecting the workspace configuration and
managing the encrypted credential store.

The store holds the GitHub access token, repository owner and name, and
the optional data-encryption passphrase, sealed under a master password
that is never written to disk.

Examples:
  # Create or refresh the credential store
  tosk config init

  # Show the workspace configuration and store status
  tosk config show`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	configPrompter = nil
	resetConfigInitState()
	resetConfigShowState()
	resetConfigCobraFlagState()
}

// SetConfigPrompter overrides the credential prompter for testing.
func SetConfigPrompter(p secrets.Prompter) {
	configPrompter = p
}

// resetConfigCobraFlagState resets the flag state for all config commands to prevent test pollution.
func resetConfigCobraFlagState() {
	if ConfigCmd != nil && ConfigCmd.Flags() != nil {
		ConfigCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
