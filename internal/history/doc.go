// Package history records the planner's action history.
//
// Every mutating task operation (add, edit, delete, toggle, due-date
// change, import) and every backup transfer is appended to a
// workspace-level log, which `tosk tasks history` displays.
//
// # Log Format
//
// The history is stored as JSON Lines (one JSON object per line) at:
//
//	.tosk/history.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Device name
//   - Operation name
//   - Operation-specific details (task ID and title, counts, file names)
//
// # Usage
//
// Create an entry with the device pre-populated:
//
//	entry := history.ForDevice(history.OpToggle)
//	entry.TaskID = task.ID
//	entry.Title = task.Title
//	history.Log(entry)
//
// # Failure Handling
//
// History logging is best-effort. If logging fails (permissions, disk
// full, etc.), the operation continues without error. A task action
// never fails just because its history entry could not be written.
//
// # Reading Logs
//
// Use ReadEntries() to parse the history for display. Malformed entries
// are silently skipped to handle partial writes.
package history
