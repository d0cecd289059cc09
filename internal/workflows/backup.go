package workflows

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
)

// OutcomeState classifies what happened to one file of a batch.
type OutcomeState string

const (
	// OutcomePushed means the file was uploaded.
	OutcomePushed OutcomeState = "pushed"
	// OutcomeRestored means the file was downloaded and written locally.
	OutcomeRestored OutcomeState = "restored"
	// OutcomeSkipped means an optional file was absent, which is not a failure.
	OutcomeSkipped OutcomeState = "skipped"
	// OutcomeFailed means the transfer failed. Detail carries the error.
	OutcomeFailed OutcomeState = "failed"
)

// FileOutcome is one line of a batch backup or restore report.
type FileOutcome struct {
	// Local is the file's name in the workspace.
	Local string

	// Remote is the file's path in the backup repository.
	Remote string

	// State classifies the outcome.
	State OutcomeState

	// Detail explains a skip or failure.
	Detail string
}

// backupFile is one entry of the fixed local to remote mapping.
type backupFile struct {
	localPath  string
	remotePath string

	// optional files are skipped when absent instead of failing the
	// batch entry. The task list is required; its CSV export only
	// exists after an export.
	optional bool
}

// backupFiles returns the fixed mapping between workspace files and
// their remote backup paths.
func backupFiles(config *configs.WorkspaceConfig) []backupFile {
	prefix := config.Backup.Prefix
	return []backupFile{
		{
			localPath:  configs.ToskWorkspaceSettings.TaskFilePath,
			remotePath: path.Join(prefix, configs.TaskFileName),
			optional:   false,
		},
		{
			localPath:  configs.ToskWorkspaceSettings.ExportFilePath,
			remotePath: path.Join(prefix, configs.ExportFileName),
			optional:   true,
		},
	}
}

// BackupOptions configures the backup workflow.
type BackupOptions struct {
	// Prompter overrides the interactive credential prompter, used in tests.
	Prompter secrets.Prompter

	// BaseURL overrides the remote API root, used in tests.
	BaseURL string
}

// BackupResult contains the per-file outcomes of a backup.
type BackupResult struct {
	Outcomes []FileOutcome
	Pushed   int
	Skipped  int
	Failed   int

	// Device is the name recorded in the backup commit messages.
	Device string

	// Encrypted reports whether payloads were sealed before upload.
	Encrypted bool
}

// Backup pushes every mapped workspace file to the remote repository.
//
// The credential store is unlocked first, prompting for the master
// password and any missing credential. Files are pushed independently:
// one file's failure never stops the others, and each outcome is
// reported on its own line. The caller decides whether a partial
// failure fails the command.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns store errors when the credential store cannot be unlocked.
func Backup(ctx context.Context, opts BackupOptions) (*BackupResult, error) {
	config, err := requireWorkspace()
	if err != nil {
		return nil, err
	}

	bundle, err := unlockBundle(opts.Prompter)
	if err != nil {
		return nil, err
	}

	syncer := newSyncer(bundle, config, opts.BaseURL)
	device := config.Workspace.Device
	message := fmt.Sprintf("tosk backup from %s", device)

	result := &BackupResult{Device: device, Encrypted: bundle.Passphrase != ""}
	for _, f := range backupFiles(config) {
		outcome := FileOutcome{Local: filepath.Base(f.localPath), Remote: f.remotePath}

		err := syncer.Push(ctx, f.localPath, f.remotePath, message)
		switch {
		case err == nil:
			outcome.State = OutcomePushed
			result.Pushed++
		case f.optional && errors.Is(err, terrors.ErrLocalFileMissing):
			outcome.State = OutcomeSkipped
			outcome.Detail = "local file missing"
			result.Skipped++
		default:
			outcome.State = OutcomeFailed
			outcome.Detail = err.Error()
			result.Failed++
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	entry := history.ForDevice(history.OpBackup)
	entry.Count = result.Pushed
	history.Log(entry)

	return result, nil
}

// RestoreOptions configures the restore workflow.
type RestoreOptions struct {
	// Prompter overrides the interactive credential prompter, used in tests.
	Prompter secrets.Prompter

	// BaseURL overrides the remote API root, used in tests.
	BaseURL string
}

// RestoreResult contains the per-file outcomes of a restore.
type RestoreResult struct {
	Outcomes []FileOutcome
	Restored int
	Skipped  int
	Failed   int
}

// Restore pulls every mapped workspace file from the remote repository,
// replacing the local copies. Like Backup, files are processed
// independently and each gets its own outcome line.
//
// Returns ErrWorkspaceNotInitialized if there is no workspace.
// Returns store errors when the credential store cannot be unlocked.
func Restore(ctx context.Context, opts RestoreOptions) (*RestoreResult, error) {
	config, err := requireWorkspace()
	if err != nil {
		return nil, err
	}

	bundle, err := unlockBundle(opts.Prompter)
	if err != nil {
		return nil, err
	}

	syncer := newSyncer(bundle, config, opts.BaseURL)

	result := &RestoreResult{}
	for _, f := range backupFiles(config) {
		outcome := FileOutcome{Local: filepath.Base(f.localPath), Remote: f.remotePath}

		err := syncer.Pull(ctx, f.remotePath, f.localPath)
		switch {
		case err == nil:
			outcome.State = OutcomeRestored
			result.Restored++
		case f.optional && isRemoteNotFound(err):
			outcome.State = OutcomeSkipped
			outcome.Detail = "remote file missing"
			result.Skipped++
		default:
			outcome.State = OutcomeFailed
			outcome.Detail = err.Error()
			result.Failed++
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	entry := history.ForDevice(history.OpRestore)
	entry.Count = result.Restored
	history.Log(entry)

	return result, nil
}
