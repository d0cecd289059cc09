// Package tasks implements the planner's task model and its two file
// formats.
//
// The task list lives in tasks.json at the workspace root as a JSON
// array with fixed field names and two-space indentation. IDs are
// sequential and dense: deleting a task renumbers the remainder 1..n.
//
// Tasks are entered with the compact spec syntax
//
//	title::duration::priority::due
//
// where every field after the title may be omitted. Duration defaults
// to 60 minutes, priority to 1, and the due date to none. Numbers that
// fail to parse fall back to their defaults rather than rejecting the
// entry.
//
// The CSV export (tasks_export.csv) uses the header
//
//	ID,Title,Duration,Category,Priority,Due Date,Completed
//
// with capitalized booleans. Importing a CSV replaces the whole list;
// importing a plaintext file (one entry spec per line) appends.
package tasks
