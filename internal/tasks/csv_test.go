package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportImportCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks_export.csv")

	exported := sampleList()
	if err := ExportCSV(path, exported); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	imported, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(imported) != len(exported) {
		t.Fatalf("ImportCSV() = %d tasks, want %d", len(imported), len(exported))
	}
	for i := range exported {
		if imported[i] != exported[i] {
			t.Errorf("Task %d = %+v, want %+v", i, imported[i], exported[i])
		}
	}
}

func TestExportCSVShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks_export.csv")
	if err := ExportCSV(path, sampleList()); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	if lines[0] != "ID,Title,Duration,Category,Priority,Due Date,Completed" {
		t.Errorf("Header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("Export has %d lines, want 4", len(lines))
	}
	// Booleans are capitalized in exports.
	if !strings.HasSuffix(lines[1], ",True") {
		t.Errorf("Completed task row = %q, want trailing ,True", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",False") {
		t.Errorf("Open task row = %q, want trailing ,False", lines[2])
	}
}

func TestImportCSVAcceptsLowercaseBooleans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks_export.csv")
	csv := "ID,Title,Duration,Category,Priority,Due Date,Completed\n" +
		"1,Hand-edited,30,General,1,,true\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	list, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(list) != 1 || !list[0].Completed {
		t.Errorf("ImportCSV() = %+v, want one completed task", list)
	}
}

func TestImportCSVDefaultsOptionalColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks_export.csv")
	csv := "ID,Title,Duration\n1,Sparse row,45\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	list, err := ImportCSV(path)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	got := list[0]
	if got.Category != DefaultCategory || got.Priority != DefaultPriority || got.Completed {
		t.Errorf("ImportCSV() sparse row = %+v, want defaults filled in", got)
	}
}

func TestImportCSVRejects(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing required column", "Title,Duration\nOrphan,30\n"},
		{"unparsable ID", "ID,Title,Duration\nfirst,Orphan,30\n"},
		{"unparsable Duration", "ID,Title,Duration\n1,Orphan,half an hour\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks_export.csv")
			if err := os.WriteFile(path, []byte(tt.csv), 0644); err != nil {
				t.Fatalf("Failed to write CSV: %v", err)
			}
			if _, err := ImportCSV(path); err == nil {
				t.Error("ImportCSV() should reject this file")
			}
		})
	}
}
