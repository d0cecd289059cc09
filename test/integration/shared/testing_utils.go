// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and verifying expected workspace structures.
package shared

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctsdownloads/tosk-task-manager/cmd"
	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment sets up the test environment with a temporary directory.
func SetupTestEnvironment(t *testing.T, tempDir, originalWd string, originalSettings *configs.WorkspaceSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.ToskWorkspaceSettings = originalSettings
		cmd.ResetGlobalState()
		cmd.ResetBackupState()
		cmd.ResetConfigState()
		cmd.ResetInitState()
	})

	// Start from unresolved settings so each test discovers its own workspace
	configs.ToskWorkspaceSettings = &configs.WorkspaceSettings{}
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to copy captured stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to copy captured stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI creates a complete CLI instance for testing, wired to run
// the given args with the specified flags.
func CreateTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the tasks command group (needed for the real
	// command implementations)
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:          "tosk",
		Short:        "tosk - a task planner with encrypted GitHub backups.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.GetInitCmd())
	rootCmd.AddCommand(cmd.GetTasksCmd())
	rootCmd.AddCommand(cmd.GetBackupCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}

	rootCmd.SetArgs(args)

	// Set the verbosity flags on every command group so the loggers built
	// in the PersistentPreRun hooks observe them.
	for _, group := range []*cobra.Command{cmd.GetTasksCmd(), cmd.GetBackupCmd(), cmd.GetConfigCmd()} {
		if err := group.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
			log.Fatalf("Failed to set verbose flag for testing: %s", err)
		}
		if err := group.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
			log.Fatalf("Failed to set debug flag for testing: %s", err)
		}
	}
	if err := cmd.GetInitCmd().Flags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := cmd.GetInitCmd().Flags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// VerifyWorkspaceStructure verifies that the expected workspace structure was created.
func VerifyWorkspaceStructure(t *testing.T, tempDir string) {
	// Check .tosk directory exists
	toskDir := filepath.Join(tempDir, ".tosk")
	if _, err := os.Stat(toskDir); os.IsNotExist(err) {
		t.Errorf(".tosk directory was not created")
	}

	// Check workspace config exists
	configFile := filepath.Join(toskDir, "config.toml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf("Workspace config was not created at %s", configFile)
	}

	// Check history file exists; init writes the first entry
	historyFile := filepath.Join(toskDir, "history.jsonl")
	if _, err := os.Stat(historyFile); os.IsNotExist(err) {
		t.Errorf("History file was not created at %s", historyFile)
	}
}

// InitializeWorkspace initializes a planner workspace by running the init command first.
func InitializeWorkspace(t *testing.T) {
	output, err := CaptureOutput(func() error {
		testCmd := CreateTestCLI([]string{"init", "--device", "test-laptop"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Fatalf("Failed to initialize workspace: %v\nOutput: %s", err, output)
	}
}
