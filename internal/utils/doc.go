// Package utils provides shared utility functions for the tosk application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for working with the filesystem and workspace structure:
//   - FindWorkspaceRoot: walks up directories to find .tosk
//   - WriteFileAtomic: temp-file-then-rename writes
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//   - SanitizeDeviceName: normalizes device names for safe storage
//   - GenerateDeviceName: derives this machine's device name
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - ReadPassphrase: non-echoing passphrase prompt
//   - IsTerminal: checks if stdin is a terminal
package utils
