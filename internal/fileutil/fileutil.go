// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNameEmpty         = errors.New("name cannot be empty")
	ErrNamePathTraversal = errors.New("name contains path separator or null byte")
)

// File permission constants.
const (
	stagingFilePermissions = 0o600 // rw-------: staged sources are private
)

// MakeStagingDir creates a private temporary directory whose name starts
// with prefix. Returns the directory and a cleanup function removing it
// with everything inside.
func MakeStagingDir(prefix string) (dir string, cleanup func(), err error) {
	if err := ValidateName(prefix); err != nil {
		return "", nil, err
	}

	dir, err = os.MkdirTemp("", prefix+"*")
	if err != nil {
		return "", nil, fmt.Errorf("creating staging directory: %w", err)
	}

	cleanup = func() { _ = os.RemoveAll(dir) }
	return dir, cleanup, nil
}

// WriteStagingFile writes content to dir/name and returns the full path.
// The name must be a bare file name.
func WriteStagingFile(dir, name, content string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), stagingFilePermissions); err != nil {
		return "", fmt.Errorf("writing staging file: %w", err)
	}
	return path, nil
}

// ValidateName checks that name is safe to join under a directory.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameEmpty
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return ErrNamePathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./md2doc.yaml" -> true (relative path)
//   - "/etc/md2doc/server.yaml" -> true (absolute)
//   - "C:\md2doc\server.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
