package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempFile(t *testing.T) {
	content := "test content\nline 2"
	path := TempFile(t, content)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("temp file does not exist: %s", path)
	}

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read temp file: %v", err)
	}

	if string(actual) != content {
		t.Errorf("content mismatch: expected %q, got %q", content, string(actual))
	}
}

func TestTempDir(t *testing.T) {
	dir := TempDir(t)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		t.Fatalf("temp dir does not exist: %s", dir)
	}

	if !info.IsDir() {
		t.Errorf("path is not a directory: %s", dir)
	}
}

func TestCreateFileTree(t *testing.T) {
	dir := TempDir(t)

	files := map[string]string{
		"file1.txt":        "content 1",
		"subdir/file2.txt": "content 2",
	}
	CreateFileTree(t, dir, files)

	for path, content := range files {
		actual, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		AssertEqual(t, content, string(actual))
	}
}

func TestGeneratePage(t *testing.T) {
	page := GeneratePage(10, 3, "6.005")
	lines := strings.Split(strings.TrimSuffix(page, "\n"), "\n")
	AssertEqual(t, 10, len(lines))

	matches := 0
	for _, line := range lines {
		if strings.Contains(line, "6.005") {
			matches++
		}
	}
	// Lines 0, 3, 6 and 9
	AssertEqual(t, 4, matches)

	AssertNotContains(t, GeneratePage(5, 0, "6.005"), "6.005")
}

func TestCaptureOutput(t *testing.T) {
	out := CaptureOutput(t, func() {
		fmt.Println("captured")
	})
	AssertEqual(t, "captured\n", out)
}
