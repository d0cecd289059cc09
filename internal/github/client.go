package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds every request. A slow or unreachable remote
// surfaces as an error, never a hang.
const DefaultTimeout = 30 * time.Second

// maxErrorBody limits how much of an error response is kept for display.
const maxErrorBody = 4096

// Client talks to the contents API of a single GitHub repository.
type Client struct {
	Token string
	Owner string
	Repo  string

	// BaseURL overrides the API root, used in tests.
	BaseURL string

	// HTTPClient overrides the default client, used in tests.
	HTTPClient *http.Client
}

// NewClient returns a Client for the given repository with the default
// timeout applied.
func NewClient(token, owner, repo string) *Client {
	return &Client{
		Token:      token,
		Owner:      owner,
		Repo:       repo,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// File is a single file fetched from the repository.
type File struct {
	Content []byte // Decoded file contents.
	SHA     string // Version token for subsequent updates.
}

// PutOptions describes a contents API write.
type PutOptions struct {
	Message string // Commit message.
	Content []byte // Raw file contents, encoded for transport here.
	Branch  string // Target branch.
	SHA     string // Current version token. Empty means create.
}

// contentsResponse is the subset of the GET response we need.
type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// putRequest is the JSON body of a contents API write.
type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// GetContents fetches a file from the repository at the given ref.
// Any non-200 response, including 404 for a missing file, is returned
// as a RemoteError carrying the status code and body verbatim.
func (c *Client) GetContents(ctx context.Context, path string, ref string) (*File, error) {
	endpoint := c.contentsURL(path)
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp)
	}

	var parsed contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	content, err := decodeContent(parsed.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file contents: %w", err)
	}

	return &File{Content: content, SHA: parsed.SHA}, nil
}

// PutContents creates or updates a file in the repository. An empty
// opts.SHA creates the file; a non-empty one updates the version it
// names. Any response other than 200 or 201 is returned as a
// RemoteError carrying the status code and body verbatim.
func (c *Client) PutContents(ctx context.Context, path string, opts PutOptions) error {
	body, err := json.Marshal(putRequest{
		Message: opts.Message,
		Content: base64.StdEncoding.EncodeToString(opts.Content),
		Branch:  opts.Branch,
		SHA:     opts.SHA,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return remoteError(resp)
	}

	return nil
}

func (c *Client) contentsURL(path string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", base, c.Owner, c.Repo, path)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// remoteError captures a non-success response with its body verbatim.
// The API's error vocabulary is rich and changes independently of this
// tool, so no interpretation is attempted.
func remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &terrors.RemoteError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// decodeContent decodes the base64 content field, which the API wraps
// with newlines.
func decodeContent(encoded string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, encoded)
	return base64.StdEncoding.DecodeString(cleaned)
}
