// Package github is a minimal client for the GitHub repository
// contents API, which backs the planner's remote backups.
//
// Only two operations are needed:
//
//   - GetContents fetches a file and its version token (sha).
//   - PutContents creates or updates a file. Supplying the current sha
//     makes the write an update; omitting it makes it a create, which
//     the remote rejects if the file already exists.
//
// # Error Policy
//
// Any non-success response becomes a RemoteError carrying the HTTP
// status code and response body verbatim. The API's failure modes are
// numerous and change independently of this tool, so the client
// reports them without interpretation. A 404 on GetContents is also a
// RemoteError; callers that need to distinguish "file absent" inspect
// the status code.
//
// # Transport
//
// Every request carries a Bearer token, the application/vnd.github+json
// Accept header, and a 30 second timeout. There are no retries.
package github
