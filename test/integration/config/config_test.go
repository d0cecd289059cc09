package config_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/ctsdownloads/tosk-task-manager/cmd"
	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
	"github.com/ctsdownloads/tosk-task-manager/test/integration/shared"
)

// runConfigCLI executes one CLI invocation with the given scripted prompter.
func runConfigCLI(p *secrets.ScriptedPrompter, args ...string) (string, error) {
	if p != nil {
		cmd.SetConfigPrompter(p)
	}
	return shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI(args, nil, nil, false, false)
		return testCmd.Execute()
	})
}

// TestConfigStoreHandling contains integration tests for the `tosk config`
// commands around credential store edge cases.
func TestConfigStoreHandling(t *testing.T) {
	// Save original working directory
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	// Save original workspace settings to restore later
	originalSettings := configs.ToskWorkspaceSettings

	t.Run("BlankTokenAborts", func(t *testing.T) {
		testBlankTokenAborts(t, originalWd, originalSettings)
	})

	t.Run("MasterPasswordMismatch", func(t *testing.T) {
		testMasterPasswordMismatch(t, originalWd, originalSettings)
	})

	t.Run("ShowNeverOpensStore", func(t *testing.T) {
		testShowNeverOpensStore(t, originalWd, originalSettings)
	})

	t.Run("ShowJSONReportsStore", func(t *testing.T) {
		testShowJSONReportsStore(t, originalWd, originalSettings)
	})

	t.Run("ShowWithVerboseFlag", func(t *testing.T) {
		testShowWithVerboseFlag(t, originalWd, originalSettings)
	})
}

func newConfigWorkspace(t *testing.T, pattern, originalWd string, originalSettings *configs.WorkspaceSettings) {
	tempDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)
	shared.InitializeWorkspace(t)
}

// testBlankTokenAborts tests that leaving the token blank aborts without
// writing a store.
func testBlankTokenAborts(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newConfigWorkspace(t, "tosk-test-config-blanktoken-*", originalWd, originalSettings)

	prompter := &secrets.ScriptedPrompter{Answers: []string{""}}
	output, err := runConfigCLI(prompter, "config", "init")
	if err != nil {
		t.Errorf("A blank credential should not return an error, got: %v", err)
	}
	if !strings.Contains(output, "required credential is missing") {
		t.Errorf("Expected missing-credential message, got: %s", output)
	}

	if _, statErr := os.Stat(".tosk/secrets.enc"); !os.IsNotExist(statErr) {
		t.Errorf("No store should have been written after an aborted init")
	}
}

// testMasterPasswordMismatch tests that a failed confirmation aborts with a
// non-zero exit and no store.
func testMasterPasswordMismatch(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newConfigWorkspace(t, "tosk-test-config-mismatch-*", originalWd, originalSettings)

	prompter := &secrets.ScriptedPrompter{
		Answers: []string{"test-token", "octocat", "planner-backup", "secret", "master", "different"},
	}
	output, err := runConfigCLI(prompter, "config", "init")
	if err == nil {
		t.Errorf("A mismatched confirmation should return an error, output: %s", output)
	}
	if !strings.Contains(output, "do not match") {
		t.Errorf("Expected mismatch message, got: %s", output)
	}

	if _, statErr := os.Stat(".tosk/secrets.enc"); !os.IsNotExist(statErr) {
		t.Errorf("No store should have been written after a failed confirmation")
	}
}

// testShowNeverOpensStore tests that show reports the store without asking
// for the master password.
func testShowNeverOpensStore(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newConfigWorkspace(t, "tosk-test-config-sealed-*", originalWd, originalSettings)

	setup := &secrets.ScriptedPrompter{
		Answers: []string{"test-token", "octocat", "planner-backup", "secret", "master", "master"},
	}
	if output, err := runConfigCLI(setup, "config", "init"); err != nil {
		t.Fatalf("Config init failed: %v\nOutput: %s", err, output)
	}

	watcher := &secrets.ScriptedPrompter{}
	output, err := runConfigCLI(watcher, "config", "show")
	if err != nil {
		t.Fatalf("Show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "configured") {
		t.Errorf("Expected configured store in output, got: %s", output)
	}
	if len(watcher.Prompts) != 0 {
		t.Errorf("Show should never prompt, got %d prompts: %v", len(watcher.Prompts), watcher.Prompts)
	}
}

// testShowJSONReportsStore tests the JSON output after the store exists.
func testShowJSONReportsStore(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newConfigWorkspace(t, "tosk-test-config-json-*", originalWd, originalSettings)

	setup := &secrets.ScriptedPrompter{
		Answers: []string{"test-token", "octocat", "planner-backup", "secret", "master", "master"},
	}
	if output, err := runConfigCLI(setup, "config", "init"); err != nil {
		t.Fatalf("Config init failed: %v\nOutput: %s", err, output)
	}

	output, err := runConfigCLI(nil, "config", "show", "--json")
	if err != nil {
		t.Fatalf("JSON show failed: %v\nOutput: %s", err, output)
	}

	var parsed struct {
		Backup struct {
			StoreConfigured bool `json:"store_configured"`
		} `json:"backup"`
	}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}
	if !parsed.Backup.StoreConfigured {
		t.Errorf("Expected store_configured true, got: %s", output)
	}
}

// testShowWithVerboseFlag tests that verbose mode surfaces log lines.
func testShowWithVerboseFlag(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newConfigWorkspace(t, "tosk-test-config-verbose-*", originalWd, originalSettings)

	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"config", "show"}, nil, nil, true, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Fatalf("Show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "[info]") {
		t.Errorf("Expected verbose [info] messages not found in output: %s", output)
	}
}
