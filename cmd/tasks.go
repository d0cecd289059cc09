package cmd

import (
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	TasksCmd = &cobra.Command{
		Use:   "tasks",
		Short: "Manage the tasks in the current workspace",
		Long:  `Provides adding, listing, editing, completing, deleting, importing, and exporting of tasks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing tasks command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	TasksCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	TasksCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	TasksCmd.AddCommand(addCmd)
	TasksCmd.AddCommand(listCmd)
	TasksCmd.AddCommand(editCmd)
	TasksCmd.AddCommand(doneCmd)
	TasksCmd.AddCommand(dueCmd)
	TasksCmd.AddCommand(deleteCmd)
	TasksCmd.AddCommand(exportCmd)
	TasksCmd.AddCommand(importCmd)
	TasksCmd.AddCommand(historyCmd)
}

// Helper functions for testing

// GetTasksCmd returns the TasksCmd for testing.
func GetTasksCmd() *cobra.Command {
	return TasksCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetListCommandState()
	resetEditCommandState()
	resetImportCommandState()
	resetHistoryCommandState()
	resetTasksCobraFlagState()
}

// resetTasksCobraFlagState resets the flag state for all tasks commands to prevent test pollution.
func resetTasksCobraFlagState() {
	if TasksCmd != nil && TasksCmd.Flags() != nil {
		TasksCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
