// Package filex provides small filesystem helpers shared by the file-backed
// stores.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any missing parents) if it does not exist.
// Calling it on an existing directory is a no-op.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// EnsureSubDir creates (if needed) and returns the path of the subdirectory
// name under base.
func EnsureSubDir(base, name string) (string, error) {
	dir := filepath.Join(base, name)
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}
