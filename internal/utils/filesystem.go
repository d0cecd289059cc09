package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FindWorkspaceRoot traverses up directories to find the planner workspace root.
// Returns the path to the directory containing .tosk if found, empty string otherwise.
// Stops searching when it reaches the user's home directory.
func FindWorkspaceRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	// Get the user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		toskDir := filepath.Join(currentDir, ".tosk")
		fileInfo, err := os.Stat(toskDir)
		// No error means the path exists
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for .tosk directory at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// If we've reached the filesystem root and haven't found .tosk
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, so readers never observe a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
