package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// WorkspaceName is the name for the workspace. If empty, uses the
	// directory name.
	WorkspaceName string

	// DeviceName labels this device in backup commits and history
	// entries. If empty, a name is derived from the hostname.
	DeviceName string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// WorkspaceName is the name of the initialized workspace.
	WorkspaceName string

	// WorkspaceUUID is the unique identifier assigned to the workspace.
	WorkspaceUUID string

	// DeviceName is the name assigned to this device.
	DeviceName string

	// WorkspacePath is the root path of the workspace.
	WorkspacePath string

	// CreatedPaths lists what init wrote, for display.
	CreatedPaths []string
}

// Init initializes a new planner workspace in the current directory.
//
// It creates the .tosk directory and the workspace configuration. The
// task list itself comes into existence with the first task; the
// credential store with the first backup command.
//
// Returns ErrWorkspaceAlreadyInitialized if the directory, or any
// parent, already holds a workspace.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	existing, err := utils.FindWorkspaceRoot()
	if err != nil {
		return nil, fmt.Errorf("checking for existing workspace: %w", err)
	}
	if existing != "" {
		return nil, fmt.Errorf("%w: %s", terrors.ErrWorkspaceAlreadyInitialized, existing)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	workspaceName := opts.WorkspaceName
	if workspaceName == "" {
		workspaceName = filepath.Base(wd)
	}

	deviceName := opts.DeviceName
	if deviceName == "" {
		deviceName = utils.GenerateDeviceName()
	} else if !utils.IsValidDeviceName(deviceName) {
		return nil, fmt.Errorf("%w %q: use letters, digits, dashes, and underscores", terrors.ErrInvalidDeviceName, opts.DeviceName)
	}

	toskDir := filepath.Join(wd, ".tosk")
	cleanupNeeded := false
	defer func() {
		if cleanupNeeded {
			os.RemoveAll(toskDir)
		}
	}()

	if err := os.MkdirAll(toskDir, 0700); err != nil {
		return nil, fmt.Errorf("creating .tosk directory: %w", err)
	}
	cleanupNeeded = true

	configs.ToskWorkspaceSettings = configs.SettingsForRoot(wd)

	config := configs.NewWorkspaceConfig(workspaceName, deviceName)
	if err := configs.SaveWorkspaceConfig(config); err != nil {
		return nil, fmt.Errorf("saving workspace config: %w", err)
	}

	entry := history.Entry{Device: deviceName, Operation: history.OpInit}
	history.Log(entry)

	cleanupNeeded = false

	return &InitResult{
		WorkspaceName: workspaceName,
		WorkspaceUUID: config.Workspace.UUID,
		DeviceName:    deviceName,
		WorkspacePath: wd,
		CreatedPaths: []string{
			configs.ToskWorkspaceSettings.ToskPath,
			configs.ToskWorkspaceSettings.ConfigFilePath,
		},
	}, nil
}

// requireWorkspace resolves the workspace settings from the working
// directory and loads its configuration. Used by every workflow that
// operates on an existing workspace.
//
// Returns ErrWorkspaceNotInitialized when no workspace is found.
func requireWorkspace() (*configs.WorkspaceConfig, error) {
	if err := configs.InitWorkspaceSettings(); err != nil {
		return nil, fmt.Errorf("initializing workspace settings: %w", err)
	}
	if configs.ToskWorkspaceSettings.WorkspacePath == "" {
		return nil, terrors.ErrWorkspaceNotInitialized
	}
	return configs.LoadWorkspaceConfig()
}
