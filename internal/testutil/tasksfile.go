package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TasksFile creates a task file with content in a fresh temp dir and returns
// its path. Empty content means the file is not created.
func TasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if content == "" {
		return path
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write task file: %v", err)
	}
	return path
}

// ReadTasksFile returns the content of a task file, or "" if it is missing.
func ReadTasksFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read task file: %v", err)
	}
	return string(data)
}
