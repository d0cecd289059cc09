package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
)

// CredentialsOptions contains options for the SetupCredentials workflow.
type CredentialsOptions struct {
	// Prompter overrides the interactive prompter. Used in tests.
	Prompter secrets.Prompter

	// Reset discards the existing store first so every credential is
	// entered fresh. Without it, recorded credentials are kept and only
	// missing ones are prompted for.
	Reset bool
}

// CredentialsResult contains the results of a SetupCredentials operation.
type CredentialsResult struct {
	Created    bool   // Whether this run created the store file.
	Encrypted  bool   // Whether backup payloads will be encrypted.
	Repository string // The owner/repo backups will target.
	Path       string // Path of the store file.
}

// SetupCredentials creates or refreshes the encrypted credential store.
// When no store exists it prompts for every credential and seals them
// under a fresh master password. When a store exists it unlocks it,
// prompts only for credentials that are missing, and rewrites the store
// only if something was filled in. Reset discards the existing store
// and starts over.
//
// Returns ErrWorkspaceNotInitialized if no workspace exists.
// Returns ErrDecryptionFailed if the master password is wrong.
// Returns ErrMissingCredential if a required credential is left blank.
func SetupCredentials(ctx context.Context, opts CredentialsOptions) (*CredentialsResult, error) {
	if _, err := requireWorkspace(); err != nil {
		return nil, err
	}

	store := openStore(opts.Prompter)
	existed := store.Exists()

	if opts.Reset && existed {
		if err := os.Remove(store.Path); err != nil {
			return nil, fmt.Errorf("removing credential store: %w", err)
		}
		existed = false
	}

	bundle, err := store.Unlock()
	if err != nil {
		return nil, err
	}

	return &CredentialsResult{
		Created:    !existed,
		Encrypted:  bundle.Passphrase != "",
		Repository: bundle.Owner + "/" + bundle.Repo,
		Path:       store.Path,
	}, nil
}
