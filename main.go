package main

import (
	"fmt"
	"os"

	"github.com/ctsdownloads/tosk-task-manager/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tosk",
	Short: "tosk - a task planner with encrypted GitHub backups.",
	Long: `tosk is a command-line task planner. Tasks live in a per-directory
workspace, and the workspace can be backed up to a GitHub repository,
optionally encrypted before anything leaves the machine.

Usage:
  tosk <command> [flags]

Available Commands:
  init       Create a planner workspace in the current directory
  tasks      Add, list, edit, complete, delete, import, and export tasks
  backup     Push to, restore from, and inspect the remote backup
  config     Manage workspace configuration and credentials

Run 'tosk help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("tosk", "alligator2", "green", true).Print()
		fmt.Println()
		fmt.Println("Welcome to tosk! Run 'tosk --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.InitCmd)
	rootCmd.AddCommand(cmd.TasksCmd)
	rootCmd.AddCommand(cmd.BackupCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)

	// Failures are reported where they happen, so Execute only decides
	// the exit code.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
