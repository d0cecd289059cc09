// Package errors provides typed error values for the tosk application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Crypto errors: sealing/opening failures (ErrDecryptionFailed, ErrInvalidEnvelope)
//   - Store errors: credential bundle issues (ErrMissingCredential, ErrMalformedStore)
//   - Workspace errors: workspace state issues (ErrWorkspaceNotInitialized)
//   - Backup errors: local/remote file issues (ErrLocalFileMissing)
//   - Task errors: task operation issues (ErrTaskNotFound)
//
// # Remote failures
//
// Non-success responses from the hosting API are reported as *RemoteError,
// which carries the HTTP status code and the response body verbatim.
// Match with errors.As or the IsRemoteError helper:
//
//	if re, ok := terrors.IsRemoteError(err); ok {
//	    fmt.Printf("remote said %d: %s\n", re.StatusCode, re.Body)
//	}
//
// # Usage
//
// Return errors from internal packages:
//
//	if settings.Root == "" {
//	    return nil, errors.ErrWorkspaceNotInitialized
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrLocalFileMissing, path)
package errors
