package errors

import (
	"errors"
	"fmt"
)

// Cryptographic errors indicate failures while sealing or opening encrypted data.
var (
	// ErrDecryptionFailed indicates authentication of an envelope failed,
	// either because the password is wrong or the data was tampered with.
	ErrDecryptionFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrInvalidEnvelope indicates encrypted data is too short to contain
	// the salt and nonce header.
	ErrInvalidEnvelope = errors.New("encrypted data is malformed")

	// ErrEncryptFailed indicates sealing plaintext failed.
	ErrEncryptFailed = errors.New("failed to encrypt data")
)

// Credential store errors indicate issues with the encrypted credential bundle.
var (
	// ErrMalformedStore indicates the credential store file is not valid
	// base64 or its decrypted contents are not a credential bundle.
	ErrMalformedStore = errors.New("credential store is malformed")

	// ErrMissingCredential indicates a required credential was left blank.
	ErrMissingCredential = errors.New("required credential is missing")
)

// Workspace errors indicate issues with workspace configuration or initialization.
var (
	// ErrWorkspaceNotInitialized indicates no workspace was found in this
	// directory or any parent.
	ErrWorkspaceNotInitialized = errors.New("workspace has not been initialized")

	// ErrWorkspaceAlreadyInitialized indicates the directory already contains a workspace.
	ErrWorkspaceAlreadyInitialized = errors.New("workspace has already been initialized")

	// ErrInvalidWorkspaceConfig indicates the workspace configuration is malformed.
	ErrInvalidWorkspaceConfig = errors.New("workspace configuration is invalid")

	// ErrInvalidDeviceName indicates a device name with characters outside
	// letters, digits, dashes, and underscores.
	ErrInvalidDeviceName = errors.New("invalid device name")
)

// Backup errors indicate issues while pushing to or pulling from the remote.
var (
	// ErrLocalFileMissing indicates a file scheduled for backup does not exist locally.
	ErrLocalFileMissing = errors.New("local file does not exist")
)

// Task errors indicate issues with task operations.
var (
	// ErrTaskNotFound indicates no task with the given ID exists.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTaskSpec indicates a task specification string could not be parsed.
	ErrInvalidTaskSpec = errors.New("invalid task specification")

	// ErrInvalidDueDate indicates a due date is not in YYYY-MM-DD form.
	ErrInvalidDueDate = errors.New("due date must be in YYYY-MM-DD format")

	// ErrUnknownSortKey indicates a list sort key that is not recognized.
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// RemoteError reports a non-success response from the hosting API.
// The status code and response body are preserved verbatim so callers
// can show exactly what the remote reported.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsRemoteError reports whether err wraps a RemoteError, returning it if so.
func IsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
