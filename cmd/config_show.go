package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/internal/tasks"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// configShowOutput is the JSON shape of the config show command.
type configShowOutput struct {
	Workspace struct {
		Name      string `json:"name"`
		UUID      string `json:"uuid"`
		Device    string `json:"device"`
		CreatedAt string `json:"created_at"`
	} `json:"workspace"`
	Backup struct {
		Branch          string `json:"branch"`
		Prefix          string `json:"prefix"`
		StoreConfigured bool   `json:"store_configured"`
	} `json:"backup"`
	Files struct {
		Tasks         int  `json:"tasks"`
		Completed     int  `json:"completed"`
		ExportPresent bool `json:"export_present"`
	} `json:"files"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the workspace configuration",
	Long: `Displays the workspace configuration from .tosk/config.toml along
with whether the credential store and local planner files exist.
Credential values are never shown; the store stays sealed.

Examples:
  tosk config show
  tosk config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		if err := configs.InitWorkspaceSettings(); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to locate workspace: %v", err)
		}
		settings := configs.ToskWorkspaceSettings
		if settings.WorkspacePath == "" {
			if configShowJSON {
				fmt.Println("{}")
				return nil
			}
			fmt.Println(ui.Warning.Sprint("⚠") + " No workspace found.")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " to create one")
			return nil
		}

		config, err := configs.LoadWorkspaceConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load workspace config: %v", err)
		}

		list, err := tasks.Load(settings.TaskFilePath)
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load task list: %v", err)
		}
		total, completed := tasks.Summary(list)

		_, exportErr := os.Stat(settings.ExportFilePath)
		exportPresent := exportErr == nil
		storeConfigured := false
		if _, err := os.Stat(settings.StoreFilePath); err == nil {
			storeConfigured = true
		}

		ConfigLogger.Debugf("Workspace %s loaded with %d tasks", config.Workspace.Name, total)

		if configShowJSON {
			var out configShowOutput
			out.Workspace.Name = config.Workspace.Name
			out.Workspace.UUID = config.Workspace.UUID
			out.Workspace.Device = config.Workspace.Device
			out.Workspace.CreatedAt = config.Workspace.CreatedAt.Format("2006-01-02")
			out.Backup.Branch = config.Backup.Branch
			out.Backup.Prefix = config.Backup.Prefix
			out.Backup.StoreConfigured = storeConfigured
			out.Files.Tasks = total
			out.Files.Completed = completed
			out.Files.ExportPresent = exportPresent

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("Workspace")
		fmt.Printf("  Name:      %s\n", config.Workspace.Name)
		fmt.Printf("  UUID:      %s\n", config.Workspace.UUID)
		fmt.Printf("  Device:    %s\n", config.Workspace.Device)
		fmt.Printf("  Created:   %s\n", config.Workspace.CreatedAt.Format("2006-01-02"))
		fmt.Println()
		fmt.Println("Backup")
		fmt.Printf("  Branch:    %s\n", config.Backup.Branch)
		fmt.Printf("  Prefix:    %s\n", config.Backup.Prefix)
		if storeConfigured {
			fmt.Printf("  Store:     configured (%s)\n", ui.Path.Sprint(settings.StoreFilePath))
		} else {
			fmt.Println("  Store:     " + ui.Warning.Sprint("not configured") + ", run " + ui.Code.Sprint("tosk config init"))
		}
		fmt.Println()
		fmt.Println("Files")
		fmt.Printf("  Tasks:     %d task(s), %d completed\n", total, completed)
		if exportPresent {
			fmt.Println("  Export:    present")
		} else {
			fmt.Println("  Export:    absent, run " + ui.Code.Sprint("tosk tasks export"))
		}
		return nil
	},
}
