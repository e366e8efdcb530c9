// Package inspect reads existing stack files through the compose-go loader,
// for selection menus and duplicate-name checks. It never writes anything:
// all editing goes through the comment-preserving document store instead.
package inspect

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Stack Inspection
// =============================================================================

// ServiceNames loads a stack file and returns its service names, sorted.
// The loader runs with validation, interpolation and normalization disabled:
// stack files reference ${DOCKERDIR}-style variables that only resolve at
// deploy time. All profiles are enabled so that profiled services (every
// scaffolded service carries at least the "all" profile) stay visible.
func ServiceNames(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		// compose-go rejects empty input; an empty file simply has no services.
		return nil, nil
	}

	project, err := load(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	names := make([]string, 0, len(project.Services))
	for name := range project.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// HasService reports whether the stack file defines a service with the
// given name.
func HasService(path, name string) (bool, error) {
	names, err := ServiceNames(path)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// load parses stack file content with compose-go.
func load(content []byte) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal(content, &dict); err != nil {
		return nil, err
	}
	if dict == nil {
		dict = map[string]interface{}{}
	}

	return loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: content,
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("composify-inspect", false)
		// Without this the loader filters profiled services into the
		// project's disabled set and they vanish from Services.
		opts.Profiles = []string{"*"}
		opts.SkipValidation = true
		// With interpolation skipped, ${DOCKERDIR}/<name> mounts look like
		// undefined named volumes to the consistency check; skip it too.
		opts.SkipConsistencyCheck = true
		opts.SkipInterpolation = true
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
}
