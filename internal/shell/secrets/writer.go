// Package secrets writes Docker secret files: one file per secret holding
// the plaintext value, with owner-only permissions. Existing files are never
// overwritten.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrAlreadyExists is returned when a secret file is already present.
	ErrAlreadyExists = errors.New("secret file already exists")
)

// ExistsError lists the secret names whose files already exist.
type ExistsError struct {
	Names []string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("secret files already exist: %s", strings.Join(e.Names, ", "))
}

func (e *ExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// =============================================================================
// Secret File Writing
// =============================================================================

// MountPath returns the runtime path a secret is mounted at inside a
// container, for use in *_FILE environment variables.
func MountPath(name string) string {
	return "/run/secrets/" + name
}

// Write creates one file per secret under dir, creating the directory (and
// parents) when missing. The batch is all-or-nothing up front: if any named
// file already exists, nothing is written and the error reports every
// collision. Values are written verbatim with owner-only permissions.
func Write(dir string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	var existing []string
	for name := range values {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) > 0 {
		sort.Strings(existing)
		return &ExistsError{Names: existing}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create secrets directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(values[name]), 0o600); err != nil {
			return fmt.Errorf("write secret %s: %w", name, err)
		}
	}
	return nil
}
