package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "tasks.json")

	t.Run("creates new file with contents and mode", func(t *testing.T) {
		if err := WriteFileAtomic(target, []byte(`[]`), 0600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("Failed to read written file: %v", err)
		}
		if string(data) != `[]` {
			t.Errorf("File contents = %q, want %q", data, `[]`)
		}

		info, err := os.Stat(target)
		if err != nil {
			t.Fatalf("Failed to stat written file: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("File mode = %o, want 0600", info.Mode().Perm())
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		if err := WriteFileAtomic(target, []byte(`[{"id":1}]`), 0600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("Failed to read replaced file: %v", err)
		}
		if string(data) != `[{"id":1}]` {
			t.Errorf("File contents = %q, want %q", data, `[{"id":1}]`)
		}
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		entries, err := os.ReadDir(tempDir)
		if err != nil {
			t.Fatalf("Failed to list temp dir: %v", err)
		}
		if len(entries) != 1 {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("Expected only the target file in %s, found %v", tempDir, names)
		}
	})
}
