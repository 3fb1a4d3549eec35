// Package testutil provides common test helpers for the coal project.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempRoot creates an empty container root directory and returns its path.
// The directory is automatically cleaned up when the test finishes.
func TempRoot(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), ".coal", "cons")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("TempRoot: mkdir failed: %v", err)
	}
	return root
}

// WriteContainer creates a container directory under root whose alias file
// holds the given lines, one per line. Returns the alias file path.
func WriteContainer(t *testing.T, root, name string, lines ...string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("WriteContainer: mkdir failed: %v", err)
	}

	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	path := filepath.Join(dir, "aliases")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteContainer: write failed: %v", err)
	}
	return path
}

// ReadAliasFile returns the raw alias file content of a container.
func ReadAliasFile(t *testing.T, root, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, name, "aliases"))
	if err != nil {
		t.Fatalf("ReadAliasFile: read failed: %v", err)
	}
	return string(data)
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// Environ builds an environment map from alternating key/value pairs.
func Environ(t *testing.T, kv ...string) map[string]string {
	t.Helper()

	if len(kv)%2 != 0 {
		t.Fatalf("Environ: odd number of arguments: %d", len(kv))
	}
	env := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		env[kv[i]] = kv[i+1]
	}
	return env
}
