package workflows

import (
	"context"

	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
)

// RemoteFileStatus describes one mapped file's presence on the remote.
type RemoteFileStatus struct {
	// Remote is the file's path in the backup repository.
	Remote string

	// Present reports whether the remote file exists.
	Present bool

	// SHA is the remote version token when present.
	SHA string

	// Detail carries the error text when the check itself failed.
	Detail string
}

// StatusOptions configures the backup status workflow.
type StatusOptions struct {
	// Prompter overrides the interactive credential prompter, used in tests.
	Prompter secrets.Prompter

	// BaseURL overrides the remote API root, used in tests.
	BaseURL string
}

// StatusResult describes the workspace's backup configuration and the
// state of the remote copies.
type StatusResult struct {
	WorkspaceName string
	Device        string
	Branch        string
	Prefix        string

	// Configured reports whether a credential store exists. The
	// remaining fields are only filled in when it does.
	Configured bool

	// Encrypted reports whether a non-empty data-encryption passphrase
	// is recorded, meaning backups are sealed in transit.
	Encrypted bool

	// Repository is the owner/repo the backups go to.
	Repository string

	Files []RemoteFileStatus
}

// BackupStatus reports the backup configuration and checks each mapped
// file on the remote.
//
// Unlike Backup and Restore, missing credentials are not solicited:
// status never modifies the store. With no store at all, only the
// local configuration is reported and the remote is not contacted.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns store errors when the store exists but cannot be opened.
func BackupStatus(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	config, err := requireWorkspace()
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		WorkspaceName: config.Workspace.Name,
		Device:        config.Workspace.Device,
		Branch:        config.Backup.Branch,
		Prefix:        config.Backup.Prefix,
	}

	store := openStore(opts.Prompter)
	if !store.Exists() {
		return result, nil
	}

	bundle, err := store.Load()
	if err != nil {
		return nil, err
	}

	result.Configured = true
	result.Encrypted = bundle.Passphrase != ""
	result.Repository = bundle.Owner + "/" + bundle.Repo

	syncer := newSyncer(bundle, config, opts.BaseURL)
	for _, f := range backupFiles(config) {
		status := RemoteFileStatus{Remote: f.remotePath}

		remote, err := syncer.Client.GetContents(ctx, f.remotePath, syncer.Branch)
		switch {
		case err == nil:
			status.Present = true
			status.SHA = remote.SHA
		case isRemoteNotFound(err):
			// Absent, not an error.
		default:
			status.Detail = err.Error()
		}

		result.Files = append(result.Files, status)
	}

	return result, nil
}
