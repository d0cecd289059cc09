package workflows

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/github"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// Syncer copies single files between the workspace and the remote
// repository, sealing them in transit when a data-encryption passphrase
// is recorded.
type Syncer struct {
	Client     *github.Client
	Passphrase string
	Branch     string
}

// Push uploads one local file to remotePath on the syncer's branch.
//
// The current version token is fetched immediately before the write and
// included when the remote file already exists, so a concurrent writer
// surfaces as a rejected update rather than a silent overwrite. The
// window between fetch and write is accepted; this tool serves a single
// operator.
//
// Returns ErrMissingCredential if no token is configured.
// Returns ErrLocalFileMissing if the local file does not exist.
// Returns a RemoteError for any non-success response.
func (s *Syncer) Push(ctx context.Context, localPath, remotePath, message string) error {
	if s.Client.Token == "" {
		return fmt.Errorf("%w: token", terrors.ErrMissingCredential)
	}

	data, err := os.ReadFile(localPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", terrors.ErrLocalFileMissing, localPath)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", localPath, err)
	}

	payload := data
	if s.Passphrase != "" {
		sealed, err := secrets.Seal(s.Passphrase, data)
		if err != nil {
			return fmt.Errorf("sealing %s: %w", localPath, err)
		}
		payload = sealed
	}

	sha := ""
	remote, err := s.Client.GetContents(ctx, remotePath, s.Branch)
	switch {
	case err == nil:
		sha = remote.SHA
	case isRemoteNotFound(err):
		// No remote file yet, so the write is a create.
	default:
		return fmt.Errorf("fetching version token for %s: %w", remotePath, err)
	}

	return s.Client.PutContents(ctx, remotePath, github.PutOptions{
		Message: message,
		Content: payload,
		Branch:  s.Branch,
		SHA:     sha,
	})
}

// Pull downloads remotePath and replaces the local file with it. There
// is no merge and no backup of the overwritten file; the write itself
// is atomic.
//
// Returns ErrMissingCredential if no token is configured.
// Returns a RemoteError for any non-success response, 404 included.
// Returns ErrDecryptionFailed or ErrInvalidEnvelope when a passphrase
// is recorded and the payload does not open with it.
func (s *Syncer) Pull(ctx context.Context, remotePath, localPath string) error {
	if s.Client.Token == "" {
		return fmt.Errorf("%w: token", terrors.ErrMissingCredential)
	}

	remote, err := s.Client.GetContents(ctx, remotePath, s.Branch)
	if err != nil {
		return err
	}

	data := remote.Content
	if s.Passphrase != "" {
		plain, err := secrets.Open(s.Passphrase, data)
		if err != nil {
			// Either the passphrase is wrong or the remote file was
			// pushed unencrypted. The two cases cannot be told apart
			// and neither is healed automatically.
			return fmt.Errorf("decrypting %s: %w (the remote file may be unencrypted or sealed with a different passphrase)", remotePath, err)
		}
		data = plain
	}

	if err := utils.WriteFileAtomic(localPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

// isRemoteNotFound reports whether err is a remote 404.
func isRemoteNotFound(err error) bool {
	re, ok := terrors.IsRemoteError(err)
	return ok && re.StatusCode == http.StatusNotFound
}

// openStore builds the credential store for the current workspace. A
// nil prompter uses the terminal.
func openStore(p secrets.Prompter) *secrets.Store {
	if p == nil {
		p = secrets.NewTerminalPrompter()
	}
	return &secrets.Store{
		Path:     configs.ToskWorkspaceSettings.StoreFilePath,
		Prompter: p,
	}
}

// unlockBundle opens the credential store and solicits whatever is
// still missing, persisting when anything changed.
func unlockBundle(p secrets.Prompter) (*secrets.Bundle, error) {
	return openStore(p).Unlock()
}

// newSyncer builds the remote syncer for an unlocked credential bundle.
// baseURL overrides the API root in tests.
func newSyncer(bundle *secrets.Bundle, config *configs.WorkspaceConfig, baseURL string) *Syncer {
	client := github.NewClient(bundle.Token, bundle.Owner, bundle.Repo)
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return &Syncer{
		Client:     client,
		Passphrase: bundle.Passphrase,
		Branch:     config.Backup.Branch,
	}
}
