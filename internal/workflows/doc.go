// Package workflows provides high-level orchestration for tosk commands.
//
// Workflows coordinate multiple operations across packages (configs,
// tasks, secrets, github, history) to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving the workspace and loading its configuration
//   - Unlocking the credential store when the remote is involved
//   - Performing the core operation
//   - Recording history entries
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package,
// allowing the CLI layer to provide appropriate user-facing messages
// without string matching. Use errors.Is() to check for specific error
// conditions:
//
//	result, err := workflows.AddTask(ctx, opts)
//	if errors.Is(err, terrors.ErrWorkspaceNotInitialized) {
//	    // Suggest running tosk init.
//	}
//
// Batch backup workflows are the exception to fail-fast: one file's
// failure never stops the others. The per-file outcome, including any
// error, is carried in the result and the caller decides how to report
// it.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first
// parameter. This enables cancellation and timeouts on the workflows
// that reach the network.
package workflows
