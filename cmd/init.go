package cmd

import (
	"context"
	"errors"
	"fmt"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	initName    string
	initDevice  string
	initVerbose bool
	initDebug   bool
	InitLogger  logger.Logger

	// InitCmd is the top-level init command.
	InitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a planner workspace in the current directory",
		Long: `Creates a .tosk directory here, making the current directory a
planner workspace. The workspace records its name, a random UUID, and
the name of this device, which is stamped into history entries and
backup commit messages.

Examples:
  tosk init
  tosk init --name work-notes
  tosk init --device home-desktop`,
		PreRun: func(cmd *cobra.Command, args []string) {
			InitLogger = logger.Logger{
				Verbose: initVerbose,
				Debug:   initDebug,
			}
			InitLogger.Debugf("Initializing init command with verbose=%t, debug=%t", initVerbose, initDebug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			InitLogger.Infof("Starting init command")

			opts := workflows.InitOptions{
				WorkspaceName: initName,
				DeviceName:    initDevice,
			}
			result, err := workflows.Init(context.Background(), opts)
			if err != nil {
				fmt.Println(formatInitError(err))
				if isInitUnexpectedError(err) {
					return err
				}
				return nil
			}

			InitLogger.Debugf("Workspace %s created at %s", result.WorkspaceUUID, result.WorkspacePath)

			fmt.Println(ui.Success.Sprint("✓") + " Workspace " + ui.Highlight.Sprint(result.WorkspaceName) + " initialized")
			fmt.Println(ui.Info.Sprint("→") + " Device: " + ui.Highlight.Sprint(result.DeviceName))
			fmt.Print(ui.Info.Sprint("→") + " Created:" + utils.FormatPaths(result.CreatedPaths))
			fmt.Println(ui.Info.Sprint("→") + " Add a task with " + ui.Code.Sprint(`tosk tasks add "title"`))
			fmt.Println(ui.Info.Sprint("→") + " Configure backups with " + ui.Code.Sprint("tosk config init"))
			return nil
		},
	}
)

func init() {
	InitCmd.Flags().StringVarP(&initName, "name", "n", "", "workspace name (defaults to the directory name)")
	InitCmd.Flags().StringVar(&initDevice, "device", "", "device name (defaults to a sanitized hostname)")
	InitCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "enable verbose output")
	InitCmd.Flags().BoolVarP(&initDebug, "debug", "d", false, "enable debug output")
}

// GetInitCmd returns the InitCmd for testing.
func GetInitCmd() *cobra.Command {
	return InitCmd
}

// ResetInitState resets the init command's global state for testing.
func ResetInitState() {
	initName = ""
	initDevice = ""
	initVerbose = false
	initDebug = false
	resetInitCobraFlagState()
}

// resetInitCobraFlagState resets the flag state for the init command to prevent test pollution.
func resetInitCobraFlagState() {
	if InitCmd != nil && InitCmd.Flags() != nil {
		InitCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// formatInitError formats an init error for display to the user.
func formatInitError(err error) string {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceAlreadyInitialized):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, terrors.ErrInvalidDeviceName):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to initialize workspace: " + err.Error()
	}
}

// isInitUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isInitUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, terrors.ErrWorkspaceAlreadyInitialized),
		errors.Is(err, terrors.ErrInvalidDeviceName):
		return false
	default:
		return true
	}
}
