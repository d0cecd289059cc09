package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

func newTestClient(serverURL string) *Client {
	client := NewClient("test-token", "octocat", "planner-backup")
	client.BaseURL = serverURL
	return client
}

func TestGetContents(t *testing.T) {
	var gotPath, gotRef, gotAuth, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRef = r.URL.Query().Get("ref")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")

		// The API wraps base64 content with newlines.
		encoded := base64.StdEncoding.EncodeToString([]byte("hello planner"))
		wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content": wrapped,
			"sha":     "abc123",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	file, err := client.GetContents(context.Background(), "backup/tasks.json", "main")
	if err != nil {
		t.Fatalf("GetContents failed: %v", err)
	}

	if gotPath != "/repos/octocat/planner-backup/contents/backup/tasks.json" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if gotRef != "main" {
		t.Errorf("Expected ref main, got %s", gotRef)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected bearer auth, got %s", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Unexpected accept header: %s", gotAccept)
	}
	if string(file.Content) != "hello planner" {
		t.Errorf("Expected decoded contents, got %q", file.Content)
	}
	if file.SHA != "abc123" {
		t.Errorf("Expected sha abc123, got %s", file.SHA)
	}
}

func TestGetContents_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetContents(context.Background(), "backup/tasks.json", "main")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	remoteErr, ok := terrors.IsRemoteError(err)
	if !ok {
		t.Fatalf("Expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Body != `{"message":"Not Found"}` {
		t.Errorf("Expected body verbatim, got %q", remoteErr.Body)
	}
}

func TestGetContents_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetContents(context.Background(), "backup/tasks.json", "main")

	remoteErr, ok := terrors.IsRemoteError(err)
	if !ok {
		t.Fatalf("Expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Body != "boom" {
		t.Errorf("Expected body verbatim, got %q", remoteErr.Body)
	}
}

func TestPutContents_Create(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.PutContents(context.Background(), "backup/tasks.json", PutOptions{
		Message: "tosk backup from laptop",
		Content: []byte("hello"),
		Branch:  "main",
	})
	if err != nil {
		t.Fatalf("PutContents failed: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("Expected PUT, got %s", gotMethod)
	}
	if gotBody["message"] != "tosk backup from laptop" {
		t.Errorf("Unexpected message: %v", gotBody["message"])
	}
	if gotBody["branch"] != "main" {
		t.Errorf("Unexpected branch: %v", gotBody["branch"])
	}
	if _, present := gotBody["sha"]; present {
		t.Errorf("Create request must not carry a sha, got %v", gotBody["sha"])
	}

	decoded, err := base64.StdEncoding.DecodeString(gotBody["content"].(string))
	if err != nil {
		t.Fatalf("Content is not valid base64: %v", err)
	}
	if string(decoded) != "hello" {
		t.Errorf("Expected uploaded content hello, got %q", decoded)
	}
}

func TestPutContents_Update(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.PutContents(context.Background(), "backup/tasks.json", PutOptions{
		Message: "tosk backup from laptop",
		Content: []byte("hello again"),
		Branch:  "main",
		SHA:     "abc123",
	})
	if err != nil {
		t.Fatalf("PutContents failed: %v", err)
	}

	if gotBody["sha"] != "abc123" {
		t.Errorf("Update request must carry the sha, got %v", gotBody["sha"])
	}
}

func TestPutContents_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"sha does not match"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.PutContents(context.Background(), "backup/tasks.json", PutOptions{
		Message: "tosk backup from laptop",
		Content: []byte("hello"),
		Branch:  "main",
		SHA:     "stale",
	})

	remoteErr, ok := terrors.IsRemoteError(err)
	if !ok {
		t.Fatalf("Expected RemoteError, got %T: %v", err, err)
	}
	if remoteErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", remoteErr.StatusCode)
	}
	if remoteErr.Body != `{"message":"sha does not match"}` {
		t.Errorf("Expected body verbatim, got %q", remoteErr.Body)
	}
}

func TestGetContents_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.GetContents(ctx, "backup/tasks.json", "main")
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
