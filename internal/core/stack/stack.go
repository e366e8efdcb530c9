// Package stack contains pure path derivations for application stacks: the
// application name behind a compose path, and the include entry registered in
// the main compose file.
package stack

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrOutsideStacks = errors.New("compose path is not under the stacks directory")
)

// =============================================================================
// Derivations
// =============================================================================

// ComposeFileName is the conventional compose file name inside a stack folder.
const ComposeFileName = "docker-compose.yml"

// AppName derives the application name from a compose path: the first
// directory component of the path relative to stacksRoot.
//
// Example:
//
//	AppName("/home/u/docker/stacks/jellyfin/docker-compose.yml", "/home/u/docker/stacks")
//	// "jellyfin", nil
func AppName(composePath, stacksRoot string) (string, error) {
	rel, err := filepath.Rel(stacksRoot, composePath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrOutsideStacks, composePath)
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if parts[0] == "" || parts[0] == "." {
		return "", fmt.Errorf("%w: %s", ErrOutsideStacks, composePath)
	}
	return parts[0], nil
}

// IncludePath returns the include entry registered in the main compose file
// for a stack compose path: the path relative to the docker root, with
// forward slashes.
func IncludePath(composePath, rootDir string) (string, error) {
	rel, err := filepath.Rel(rootDir, composePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrOutsideStacks, composePath)
	}
	return filepath.ToSlash(rel), nil
}

// ComposePath returns the compose file path for a stack folder.
func ComposePath(stacksRoot, folder string) string {
	return filepath.Join(stacksRoot, folder, ComposeFileName)
}
