package init_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/test/integration/shared"
)

// TestWorkspaceInitBasic contains basic integration tests for the `tosk init` command.
func TestWorkspaceInitBasic(t *testing.T) {
	// Save original working directory
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	// Save original workspace settings to restore later
	originalSettings := configs.ToskWorkspaceSettings

	t.Run("InitInEmptyFolder", func(t *testing.T) {
		testInitInEmptyFolder(t, originalWd, originalSettings)
	})

	t.Run("InitWithExplicitNameAndDevice", func(t *testing.T) {
		testInitWithExplicitNameAndDevice(t, originalWd, originalSettings)
	})

	t.Run("InitInsideNestedDirectory", func(t *testing.T) {
		testInitInsideNestedDirectory(t, originalWd, originalSettings)
	})

	t.Run("InitRecordsHistoryEntry", func(t *testing.T) {
		testInitRecordsHistoryEntry(t, originalWd, originalSettings)
	})

	t.Run("InitWithVerboseFlag", func(t *testing.T) {
		testInitWithVerboseFlag(t, originalWd, originalSettings)
	})

	t.Run("InitWithDebugFlag", func(t *testing.T) {
		testInitWithDebugFlag(t, originalWd, originalSettings)
	})
}

// testInitInEmptyFolder tests successful initialization in an empty folder.
func testInitInEmptyFolder(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-empty-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"init"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("Command failed: %v", err)
		t.Errorf("Output: %s", output)
	}

	shared.VerifyWorkspaceStructure(t, tempDir)

	if !strings.Contains(output, "initialized") {
		t.Errorf("Expected initialization message not found in output: %s", output)
	}

	config, err := configs.LoadWorkspaceConfig()
	if err != nil {
		t.Fatalf("Failed to load workspace config after init: %v", err)
	}
	if config.Workspace.UUID == "" {
		t.Errorf("Workspace UUID was not assigned")
	}
	if config.Workspace.Device == "" {
		t.Errorf("Device name was not assigned")
	}
	if config.Backup.Branch != configs.DefaultBranch {
		t.Errorf("Backup.Branch = %q, want default %q", config.Backup.Branch, configs.DefaultBranch)
	}
	if config.Backup.Prefix != configs.DefaultPrefix {
		t.Errorf("Backup.Prefix = %q, want default %q", config.Backup.Prefix, configs.DefaultPrefix)
	}
	if config.Workspace.CreatedAt.IsZero() {
		t.Errorf("CreatedAt was not recorded")
	}
}

// testInitWithExplicitNameAndDevice tests that the name and device flags are respected.
func testInitWithExplicitNameAndDevice(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-flags-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"init", "--name", "work-notes", "--device", "studio-pc"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("Command failed: %v", err)
		t.Errorf("Output: %s", output)
	}

	if !strings.Contains(output, "work-notes") {
		t.Errorf("Expected workspace name in output: %s", output)
	}
	if !strings.Contains(output, "studio-pc") {
		t.Errorf("Expected device name in output: %s", output)
	}

	config, err := configs.LoadWorkspaceConfig()
	if err != nil {
		t.Fatalf("Failed to load workspace config after init: %v", err)
	}
	if config.Workspace.Name != "work-notes" {
		t.Errorf("Workspace.Name = %q, want %q", config.Workspace.Name, "work-notes")
	}
	if config.Workspace.Device != "studio-pc" {
		t.Errorf("Workspace.Device = %q, want %q", config.Workspace.Device, "studio-pc")
	}
}

// testInitInsideNestedDirectory tests that init refuses to nest a workspace
// inside an existing one, no matter how deep.
func testInitInsideNestedDirectory(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-nested-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)
	shared.InitializeWorkspace(t)

	nestedDir := filepath.Join(tempDir, "projects", "inner")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested directory: %v", err)
	}
	if err := os.Chdir(nestedDir); err != nil {
		t.Fatalf("Failed to change to nested directory: %v", err)
	}

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"init"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("Init inside an existing workspace should not return an error, got: %v", err)
	}
	if !strings.Contains(output, "already been initialized") {
		t.Errorf("Expected already-initialized message, got: %s", output)
	}

	if _, statErr := os.Stat(filepath.Join(nestedDir, ".tosk")); !os.IsNotExist(statErr) {
		t.Errorf("A nested .tosk directory should not have been created")
	}
}

// testInitRecordsHistoryEntry tests that initialization is visible in the history.
func testInitRecordsHistoryEntry(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-history-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)
	shared.InitializeWorkspace(t)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"tasks", "history"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("History command failed: %v", err)
	}
	if !strings.Contains(output, "INIT") {
		t.Errorf("Expected INIT entry in history, got: %s", output)
	}
	if !strings.Contains(output, "test-laptop") {
		t.Errorf("Expected device name in history, got: %s", output)
	}
}

// testInitWithVerboseFlag tests initialization with verbose flag.
func testInitWithVerboseFlag(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-verbose-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"init"}, nil, nil, true, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("Command failed: %v", err)
		t.Errorf("Output: %s", output)
	}

	if !strings.Contains(output, "[info]") {
		t.Errorf("Expected verbose [info] messages not found in output: %s", output)
	}

	shared.VerifyWorkspaceStructure(t, tempDir)
}

// testInitWithDebugFlag tests initialization with debug flag.
func testInitWithDebugFlag(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", "tosk-test-init-debug-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"init"}, nil, nil, false, true)
		return testCmd.Execute()
	})
	if err != nil {
		t.Errorf("Command failed: %v", err)
		t.Errorf("Output: %s", output)
	}

	if !strings.Contains(output, "[debug]") {
		t.Errorf("Expected debug [debug] messages not found in output: %s", output)
	}

	// Debug should also include info messages
	if !strings.Contains(output, "[info]") {
		t.Errorf("Expected [info] messages not found in debug output: %s", output)
	}

	shared.VerifyWorkspaceStructure(t, tempDir)
}
