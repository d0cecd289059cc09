package secrets

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// Bundle holds the credentials the backup commands need. Passphrase may
// be empty, which means backup payloads travel unencrypted.
type Bundle struct {
	Token      string `json:"token"`
	Passphrase string `json:"passphrase"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
}

// Store manages the encrypted credential bundle on disk. The file holds
// base64 text of a sealed envelope whose plaintext is the bundle's JSON
// encoding. The master password gating the store is never written
// anywhere; every persist asks for it again.
type Store struct {
	Path     string
	Prompter Prompter

	// loaded tracks whether the bundle came from an existing store file,
	// which decides whether an empty passphrase means "recorded as
	// unencrypted" or "never asked".
	loaded bool
}

// Exists reports whether the store file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads and decrypts the credential bundle. With no store file it
// returns an empty bundle and no password is asked. With a store file it
// prompts once for the master password; a wrong password or tampered
// store aborts the operation rather than proceeding with defaults.
func (s *Store) Load() (*Bundle, error) {
	s.loaded = false
	if !s.Exists() {
		return &Bundle{}, nil
	}

	master, err := s.Prompter.Secret("Enter master password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read master password: %w", err)
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential store: %w", err)
	}

	envelope, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64", terrors.ErrMalformedStore)
	}

	plaintext, err := Open(master, envelope)
	if err != nil {
		return nil, fmt.Errorf("wrong master password or corrupted store: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		return nil, fmt.Errorf("%w: decrypted contents are not a credential bundle", terrors.ErrMalformedStore)
	}

	s.loaded = true
	return &bundle, nil
}

// EnsureRequired prompts for every credential still missing from the
// bundle and reports whether anything was filled in. A blank answer for
// the token, owner, or repo is fatal to the operation. A blank
// data-encryption passphrase is accepted and recorded; it means backups
// are pushed unencrypted.
func (s *Store) EnsureRequired(bundle *Bundle) (bool, error) {
	changed := false

	required := []struct {
		name   string
		prompt string
		secret bool
		value  *string
	}{
		{"token", "GitHub personal access token: ", true, &bundle.Token},
		{"owner", "GitHub repository owner: ", false, &bundle.Owner},
		{"repo", "GitHub repository name: ", false, &bundle.Repo},
	}

	for _, req := range required {
		if strings.TrimSpace(*req.value) != "" {
			continue
		}

		var answer string
		var err error
		if req.secret {
			answer, err = s.Prompter.Secret(req.prompt)
		} else {
			answer, err = s.Prompter.Line(req.prompt)
		}
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", req.name, err)
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			return changed, fmt.Errorf("%w: %s", terrors.ErrMissingCredential, req.name)
		}
		*req.value = answer
		changed = true
	}

	// The passphrase is only "missing" before the first persist. Once a
	// store exists, an empty passphrase is a recorded choice.
	if !s.loaded && bundle.Passphrase == "" {
		answer, err := s.Prompter.Secret("Data-encryption passphrase (empty for unencrypted backups): ")
		if err != nil {
			return changed, fmt.Errorf("failed to read passphrase: %w", err)
		}
		bundle.Passphrase = answer
		changed = true
	}

	return changed, nil
}

// Persist seals the bundle with a freshly solicited master password and
// writes it to the store file. The password from a previous Load is
// deliberately not reused, so the user always knows what they are
// setting. Creating the store for the first time asks twice.
func (s *Store) Persist(bundle *Bundle) error {
	creating := !s.Exists()

	master, err := s.Prompter.Secret("Set master password: ")
	if err != nil {
		return fmt.Errorf("failed to read master password: %w", err)
	}
	if master == "" {
		return fmt.Errorf("master password must not be empty")
	}
	if creating {
		confirm, err := s.Prompter.Secret("Confirm master password: ")
		if err != nil {
			return fmt.Errorf("failed to read master password confirmation: %w", err)
		}
		if confirm != master {
			return fmt.Errorf("master passwords do not match")
		}
	}

	plaintext, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode credential bundle: %w", err)
	}

	envelope, err := Seal(master, plaintext)
	if err != nil {
		return fmt.Errorf("failed to seal credential bundle: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(envelope) + "\n"
	if err := utils.WriteFileAtomic(s.Path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}

	s.loaded = true
	return nil
}

// Unlock is the single entry point the backup commands use: load the
// bundle, fill in whatever is missing, and persist when the store is new
// or something was solicited. A complete store is not rewritten.
func (s *Store) Unlock() (*Bundle, error) {
	bundle, err := s.Load()
	if err != nil {
		return nil, err
	}

	changed, err := s.EnsureRequired(bundle)
	if err != nil {
		return nil, err
	}

	if changed || !s.Exists() {
		if err := s.Persist(bundle); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}
