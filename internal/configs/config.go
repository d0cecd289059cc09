package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

// Defaults applied when the backup section leaves a field empty.
const (
	DefaultBranch = "main"
	DefaultPrefix = "backup"
)

// WorkspaceConfig is the non-secret workspace configuration stored in
// .tosk/config.toml. Credentials never appear here; they live in the
// encrypted store.
type WorkspaceConfig struct {
	Workspace Workspace `toml:"workspace"`
	Backup    Backup    `toml:"backup"`
}

type Workspace struct {
	UUID      string    `toml:"workspace_uuid"`
	Name      string    `toml:"name"`
	Device    string    `toml:"device"`
	CreatedAt time.Time `toml:"created_at"`
}

type Backup struct {
	Branch string `toml:"branch"`
	Prefix string `toml:"prefix"`
}

// NewWorkspaceConfig builds the initial configuration for a fresh
// workspace with a random UUID and default backup settings.
func NewWorkspaceConfig(name, device string) *WorkspaceConfig {
	return &WorkspaceConfig{
		Workspace: Workspace{
			UUID:      uuid.New().String(),
			Name:      name,
			Device:    device,
			CreatedAt: time.Now().UTC(),
		},
		Backup: Backup{
			Branch: DefaultBranch,
			Prefix: DefaultPrefix,
		},
	}
}

// LoadWorkspaceConfig loads .tosk/config.toml for the current workspace.
// Missing file returns ErrWorkspaceNotInitialized; a file that fails to
// decode returns ErrInvalidWorkspaceConfig.
func LoadWorkspaceConfig() (*WorkspaceConfig, error) {
	configPath := ToskWorkspaceSettings.ConfigFilePath
	if configPath == "" {
		return nil, terrors.ErrWorkspaceNotInitialized
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, terrors.ErrWorkspaceNotInitialized
	}

	config := &WorkspaceConfig{}
	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: %v", terrors.ErrInvalidWorkspaceConfig, err)
	}

	// Backfill defaults so older configs without a backup section keep working.
	if config.Backup.Branch == "" {
		config.Backup.Branch = DefaultBranch
	}
	if config.Backup.Prefix == "" {
		config.Backup.Prefix = DefaultPrefix
	}

	return config, nil
}

// SaveWorkspaceConfig writes the configuration to .tosk/config.toml.
func SaveWorkspaceConfig(config *WorkspaceConfig) error {
	configPath := ToskWorkspaceSettings.ConfigFilePath
	if configPath == "" {
		return terrors.ErrWorkspaceNotInitialized
	}
	return SaveTOML(configPath, config)
}
