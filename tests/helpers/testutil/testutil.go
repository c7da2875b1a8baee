// Package testutil provides testing utilities and helpers for server tests.
package testutil

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateSnapshot builds a snapshot tree under a temporary directory.
// Keys are slash-separated names relative to the root; parent
// directories are created as needed.
func CreateSnapshot(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, root, name, content)
	}
	return root
}

// WriteFile writes one file into a snapshot root and returns its path.
func WriteFile(t *testing.T, root, name, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Fetch performs a request against a test server and returns the
// response with its body drained.
func Fetch(t *testing.T, client *http.Client, method, url string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("build request for %s: %v", url, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body of %s: %v", url, err)
	}
	return resp, string(body)
}

// AssertNotFound checks the uniform miss response: a 404 with the JSON
// error body.
func AssertNotFound(t *testing.T, resp *http.Response, body string) {
	t.Helper()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected JSON error, got Content-Type %q", ct)
	}
	if !strings.Contains(body, "file not found") {
		t.Fatalf("unexpected error body: %s", body)
	}
}

// RequireCaseSensitiveFS skips the test when the filesystem folds
// case, since fallback behavior is indistinguishable there.
func RequireCaseSensitiveFS(t *testing.T, dir string) {
	t.Helper()

	probe := filepath.Join(dir, "CaseProbe")
	if err := os.WriteFile(probe, []byte("x"), 0644); err != nil {
		t.Fatalf("write case probe: %v", err)
	}
	defer os.Remove(probe)

	if _, err := os.Stat(filepath.Join(dir, "caseprobe")); err == nil {
		t.Skip("filesystem folds case")
	}
}
