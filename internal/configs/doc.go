// Package configs manages workspace settings and configuration for tosk.
//
// A planner workspace is a directory containing a .tosk/ subdirectory.
// The task list (tasks.json) and CSV export (tasks_export.csv) live at the
// workspace root; configuration, the encrypted credential store, and the
// action history live under .tosk/.
//
// # Settings
//
// ToskWorkspaceSettings holds the resolved paths of the current workspace.
// Commands call InitWorkspaceSettings once, which walks up from the working
// directory looking for .tosk (the same way version control tools locate
// their repository root). Tests point the settings at temporary directories
// and restore them afterwards.
//
// # Workspace configuration
//
// .tosk/config.toml stores non-secret preferences: the workspace name and
// UUID, the device name used in backup commit messages, and the backup
// branch and remote path prefix. Secrets are never written here; they
// belong to the encrypted store (see the secrets package).
package configs
