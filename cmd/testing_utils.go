// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up workspace test
// environments, capturing output, and running commands end to end.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	logger "github.com/ctsdownloads/tosk-task-manager/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment moves the test into tempDir and isolates the
// process-wide workspace settings. State is restored on cleanup.
func setupTestEnvironment(t *testing.T, tempDir, originalWd string, originalSettings *configs.WorkspaceSettings) {
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.ToskWorkspaceSettings = originalSettings
		ResetGlobalState()
		ResetBackupState()
		ResetConfigState()
		ResetInitState()
	})

	configs.ToskWorkspaceSettings = &configs.WorkspaceSettings{}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

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

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing, wired to run
// the given args with the specified flags.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set the flag variables for every command group so the real command
	// implementations observe them.
	verbose = verboseFlag
	debug = debugFlag
	backupVerbose = verboseFlag
	backupDebug = debugFlag
	configVerbose = verboseFlag
	configDebug = debugFlag
	initVerbose = verboseFlag
	initDebug = debugFlag

	l := logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	}
	Logger = l
	BackupLogger = l
	ConfigLogger = l
	InitLogger = l

	// Create a fresh root command for this test.
	rootCmd := &cobra.Command{
		Use:          "tosk",
		Short:        "tosk - a task planner with encrypted GitHub backups.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(InitCmd)
	rootCmd.AddCommand(TasksCmd)
	rootCmd.AddCommand(BackupCmd)
	rootCmd.AddCommand(ConfigCmd)

	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}

	rootCmd.SetArgs(args)
	return rootCmd
}

// runCommand executes the CLI with the given args, capturing all output.
func runCommand(args ...string) (string, error) {
	return captureOutput(func() error {
		cmd := createTestCLI(args, nil, nil, false, false)
		return cmd.Execute()
	})
}

// initializeWorkspace initializes a planner workspace in the current directory.
func initializeWorkspace(t *testing.T) {
	output, err := runCommand("init", "--device", "test-laptop")
	if err != nil {
		t.Fatalf("Failed to initialize workspace: %v\nOutput: %s", err, output)
	}
}
