package backup_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/ctsdownloads/tosk-task-manager/cmd"
	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
	"github.com/ctsdownloads/tosk-task-manager/internal/secrets"
	"github.com/ctsdownloads/tosk-task-manager/test/integration/shared"
)

// fakeRemote is a stand-in for the hosting API that also records the
// version token of each write, so tests can check update semantics.
type fakeRemote struct {
	mu      sync.Mutex
	files   map[string][]byte
	shas    map[string]string
	putSHAs map[string][]string
	nextSHA int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		files:   make(map[string][]byte),
		shas:    make(map[string]string),
		putSHAs: make(map[string][]string),
	}
}

func (f *fakeRemote) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(r.URL.Path, "/contents/", 2)
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := parts[1]

	switch r.Method {
	case http.MethodGet:
		content, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content": base64.StdEncoding.EncodeToString(content),
			"sha":     f.shas[path],
		})

	case http.MethodPut:
		var body struct {
			Content string `json:"content"`
			SHA     string `json:"sha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, err := base64.StdEncoding.DecodeString(body.Content)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.putSHAs[path] = append(f.putSHAs[path], body.SHA)

		_, existed := f.files[path]
		f.files[path] = content
		f.nextSHA++
		f.shas[path] = fmt.Sprintf("sha-%d", f.nextSHA)

		if existed {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusCreated)
		}
		fmt.Fprint(w, `{}`)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeRemote) get(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	return content, ok
}

func (f *fakeRemote) recordedPutSHAs(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.putSHAs[path]...)
}

// storeAnswers is the scripted prompt sequence that creates a credential
// store from scratch: token, owner, repo, passphrase, master, confirmation.
func storeAnswers(passphrase string) []string {
	return []string{"test-token", "octocat", "planner-backup", passphrase, "master", "master"}
}

// TestBackupRoundTrips contains integration tests for the `tosk backup`
// commands against a fake remote.
func TestBackupRoundTrips(t *testing.T) {
	// Save original working directory
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	// Save original workspace settings to restore later
	originalSettings := configs.ToskWorkspaceSettings

	t.Run("UnencryptedRoundTrip", func(t *testing.T) {
		testUnencryptedRoundTrip(t, originalWd, originalSettings)
	})

	t.Run("SecondPushSendsVersionToken", func(t *testing.T) {
		testSecondPushSendsVersionToken(t, originalWd, originalSettings)
	})

	t.Run("WrongMasterPasswordOnPull", func(t *testing.T) {
		testWrongMasterPasswordOnPull(t, originalWd, originalSettings)
	})

	t.Run("PullFromEmptyRemoteFails", func(t *testing.T) {
		testPullFromEmptyRemoteFails(t, originalWd, originalSettings)
	})
}

func newBackupWorkspace(t *testing.T, pattern, originalWd string, originalSettings *configs.WorkspaceSettings) *fakeRemote {
	tempDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	shared.SetupTestEnvironment(t, tempDir, originalWd, originalSettings)
	shared.InitializeWorkspace(t)

	remote := newFakeRemote()
	server := httptest.NewServer(http.HandlerFunc(remote.handler))
	t.Cleanup(server.Close)

	// Every backup invocation scripts its own prompter, so only the URL
	// has to survive between calls.
	backupServerURL = server.URL
	return remote
}

var backupServerURL string

func runBackupCLI(answers []string, args ...string) (string, error) {
	cmd.SetBackupTransport(backupServerURL, &secrets.ScriptedPrompter{Answers: answers})
	return shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI(args, nil, nil, false, false)
		return testCmd.Execute()
	})
}

// testUnencryptedRoundTrip tests that an empty passphrase pushes plaintext
// and that a pull restores it byte for byte.
func testUnencryptedRoundTrip(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	remote := newBackupWorkspace(t, "tosk-test-backup-plain-*", originalWd, originalSettings)

	if output, err := runBackupCLI(nil, "tasks", "add", "Pack for the trip"); err != nil {
		t.Fatalf("Add failed: %v\nOutput: %s", err, output)
	}
	local, err := os.ReadFile("tasks.json")
	if err != nil {
		t.Fatalf("Failed to read task list: %v", err)
	}

	output, err := runBackupCLI(storeAnswers(""), "backup", "push")
	if err != nil {
		t.Fatalf("Push failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Backups are not encrypted") {
		t.Errorf("Expected a plaintext warning after the push, got: %s", output)
	}

	uploaded, ok := remote.get("backup/tasks.json")
	if !ok {
		t.Fatalf("Remote never received the task list")
	}
	if string(uploaded) != string(local) {
		t.Errorf("Expected a plaintext upload with no passphrase recorded")
	}

	if err := os.Remove("tasks.json"); err != nil {
		t.Fatalf("Failed to remove local task list: %v", err)
	}

	output, err = runBackupCLI([]string{"master"}, "backup", "pull")
	if err != nil {
		t.Fatalf("Pull failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "restored from backup/tasks.json") {
		t.Errorf("Expected restore line, got: %s", output)
	}

	restored, err := os.ReadFile("tasks.json")
	if err != nil {
		t.Fatalf("Task list was not restored: %v", err)
	}
	if string(restored) != string(local) {
		t.Errorf("Restored task list differs from the original")
	}
}

// testSecondPushSendsVersionToken tests that updates carry the version
// token fetched from the remote, while creates send none.
func testSecondPushSendsVersionToken(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	remote := newBackupWorkspace(t, "tosk-test-backup-version-*", originalWd, originalSettings)

	if output, err := runBackupCLI(nil, "tasks", "add", "First revision"); err != nil {
		t.Fatalf("Add failed: %v\nOutput: %s", err, output)
	}
	if output, err := runBackupCLI(storeAnswers("secret"), "backup", "push"); err != nil {
		t.Fatalf("First push failed: %v\nOutput: %s", err, output)
	}

	if output, err := runBackupCLI(nil, "tasks", "add", "Second revision"); err != nil {
		t.Fatalf("Add failed: %v\nOutput: %s", err, output)
	}
	if output, err := runBackupCLI([]string{"master"}, "backup", "push"); err != nil {
		t.Fatalf("Second push failed: %v\nOutput: %s", err, output)
	}

	shas := remote.recordedPutSHAs("backup/tasks.json")
	if len(shas) != 2 {
		t.Fatalf("Expected two writes of the task list, got %d", len(shas))
	}
	if shas[0] != "" {
		t.Errorf("First write should be a create with no version token, got %q", shas[0])
	}
	if shas[1] != "sha-1" {
		t.Errorf("Second write should carry the first version token, got %q", shas[1])
	}
}

// testWrongMasterPasswordOnPull tests that a wrong master password is
// reported as a user error rather than a crash or a silent default.
func testWrongMasterPasswordOnPull(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newBackupWorkspace(t, "tosk-test-backup-wrongmaster-*", originalWd, originalSettings)

	if output, err := runBackupCLI(nil, "tasks", "add", "Guarded"); err != nil {
		t.Fatalf("Add failed: %v\nOutput: %s", err, output)
	}
	if output, err := runBackupCLI(storeAnswers("secret"), "backup", "push"); err != nil {
		t.Fatalf("Push failed: %v\nOutput: %s", err, output)
	}

	output, err := runBackupCLI([]string{"not-the-master"}, "backup", "pull")
	if err != nil {
		t.Errorf("A wrong master password should not return an error, got: %v", err)
	}
	if !strings.Contains(output, "Wrong master password or corrupted credential store") {
		t.Errorf("Expected wrong-password message, got: %s", output)
	}
}

// testPullFromEmptyRemoteFails tests that a missing task list on the
// remote fails the restore, since the task list is not optional.
func testPullFromEmptyRemoteFails(t *testing.T, originalWd string, originalSettings *configs.WorkspaceSettings) {
	newBackupWorkspace(t, "tosk-test-backup-emptyremote-*", originalWd, originalSettings)

	// Create the store without pushing anything.
	cmd.SetConfigPrompter(&secrets.ScriptedPrompter{Answers: storeAnswers("secret")})
	output, err := shared.CaptureOutput(func() error {
		testCmd := shared.CreateTestCLI([]string{"config", "init"}, nil, nil, false, false)
		return testCmd.Execute()
	})
	if err != nil {
		t.Fatalf("Config init failed: %v\nOutput: %s", err, output)
	}

	output, err = runBackupCLI([]string{"master"}, "backup", "pull")
	if err == nil {
		t.Errorf("Expected a failed restore to set a non-zero exit, output: %s", output)
	}
	if !strings.Contains(output, "tasks.json failed") {
		t.Errorf("Expected failure line for the task list, got: %s", output)
	}
	if !strings.Contains(output, "Restore finished with 1 failure(s)") {
		t.Errorf("Expected failure summary, got: %s", output)
	}
}
