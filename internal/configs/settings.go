package configs

import (
	"fmt"
	"path/filepath"

	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// WorkspaceSettings holds the resolved paths of the current planner
// workspace. All planner state is workspace-local: the task list and CSV
// export sit at the workspace root, everything else under .tosk/.
type WorkspaceSettings struct {
	WorkspaceName   string
	WorkspacePath   string
	ToskPath        string
	TaskFilePath    string
	ExportFilePath  string
	ConfigFilePath  string
	StoreFilePath   string
	HistoryFilePath string
}

// ToskWorkspaceSettings is the process-wide view of the current workspace.
// InitWorkspaceSettings fills it in; tests save and restore it.
var ToskWorkspaceSettings *WorkspaceSettings

// Fixed file names within a workspace.
const (
	TaskFileName    = "tasks.json"
	ExportFileName  = "tasks_export.csv"
	ConfigFileName  = "config.toml"
	StoreFileName   = "secrets.enc"
	HistoryFileName = "history.jsonl"
)

func init() {
	ToskWorkspaceSettings = &WorkspaceSettings{}
}

// InitWorkspaceSettings locates the workspace root by walking up from the
// working directory and resolves every workspace path from it. When no
// workspace exists, WorkspacePath is left empty and callers decide whether
// that is an error.
func InitWorkspaceSettings() error {
	root, err := utils.FindWorkspaceRoot()
	if err != nil {
		return fmt.Errorf("error locating workspace root: %w", err)
	}

	if root == "" {
		ToskWorkspaceSettings = &WorkspaceSettings{}
		return nil
	}

	ToskWorkspaceSettings = SettingsForRoot(root)
	return nil
}

// SettingsForRoot resolves workspace paths for an explicit root directory.
// Used by InitWorkspaceSettings and by tests that build workspaces in
// temporary directories.
func SettingsForRoot(root string) *WorkspaceSettings {
	toskPath := filepath.Join(root, ".tosk")
	return &WorkspaceSettings{
		WorkspaceName:   filepath.Base(root),
		WorkspacePath:   root,
		ToskPath:        toskPath,
		TaskFilePath:    filepath.Join(root, TaskFileName),
		ExportFilePath:  filepath.Join(root, ExportFileName),
		ConfigFilePath:  filepath.Join(toskPath, ConfigFileName),
		StoreFilePath:   filepath.Join(toskPath, StoreFileName),
		HistoryFilePath: filepath.Join(toskPath, HistoryFileName),
	}
}
