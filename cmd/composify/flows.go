package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/margey/composify/internal/core/service"
	"github.com/margey/composify/internal/core/traefik"
	"github.com/margey/composify/internal/shell/inspect"
	"github.com/margey/composify/internal/shell/store"
)

// =============================================================================
// Shared Interactive Helpers
// =============================================================================

// promptServiceParams gathers the service fields common to the new and
// append flows. The service name is decided by the caller.
func (a *App) promptServiceParams(name string) (service.Params, error) {
	p := service.Params{Name: name}

	var err error
	p.Image, err = a.prompt.NonEmptyLine("Docker image URL (e.g., ghcr.io/org/app:tag)", "")
	if err != nil {
		return p, err
	}
	p.ContainerPath, err = a.prompt.NonEmptyLine("Internal container volume path (e.g., /config)", "")
	if err != nil {
		return p, err
	}
	p.Expose, err = a.prompt.Confirm(
		fmt.Sprintf("Expose via Traefik (adds networks: %s and labels)?", a.cfg.Traefik.ProxyNetwork), false)
	if err != nil {
		return p, err
	}
	p.InternalPort, err = a.prompt.Int("Container internal port", 0, false)
	if err != nil {
		return p, err
	}
	if !p.Expose {
		p.ExternalPort, err = a.prompt.Int("LAN port to expose", p.InternalPort, true)
		if err != nil {
			return p, err
		}
	}
	p.Profiles, err = a.prompt.CommaList("Profiles (comma-separated, optional)")
	if err != nil {
		return p, err
	}
	p.Restart, err = a.chooseRestartPolicy()
	if err != nil {
		return p, err
	}
	if p.Expose {
		p.Middleware, err = a.chooseMiddleware()
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// chooseRestartPolicy presents the restart policy menu; cancelling keeps the
// default.
func (a *App) chooseRestartPolicy() (string, error) {
	items := make([]string, len(service.RestartPolicies))
	defaultIndex := 0
	for i, policy := range service.RestartPolicies {
		items[i] = string(policy)
		if policy == service.RestartUnlessStopped {
			defaultIndex = i
		}
	}
	idx, err := a.prompt.Choose("Select restart policy:", items, defaultIndex)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return string(service.RestartUnlessStopped), nil
	}
	return items[idx], nil
}

// chooseMiddleware offers the chains found in the Traefik middleware file,
// falling back to free-form input when the file is missing or empty.
// Cancelling skips the middleware.
func (a *App) chooseMiddleware() (string, error) {
	content, err := os.ReadFile(a.cfg.MiddlewareFile())
	if err != nil {
		content = nil
	}
	chains := traefik.MiddlewareChains(content)
	if len(chains) > 0 {
		idx, err := a.prompt.Choose("Select a middleware chain for Traefik:", chains, -1)
		if err != nil {
			return "", err
		}
		if idx < 0 {
			return "", nil
		}
		return chains[idx], nil
	}
	return a.prompt.Line("Middleware chain (file not found or empty; enter a name or leave blank to skip)", "")
}

// selectStackFile lets the user pick a compose file under the stacks
// directory, showing each file's service names. Returns "" when cancelled.
func (a *App) selectStackFile() (string, error) {
	stacksDir := a.cfg.StacksDir()
	files, err := store.ListStackFiles(stacksDir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no compose files found under %s", stacksDir)
	}

	items := make([]string, len(files))
	for i, rel := range files {
		items[i] = rel
		if names, err := inspect.ServiceNames(filepath.Join(stacksDir, rel)); err == nil && len(names) > 0 {
			items[i] = fmt.Sprintf("%s  (%s)", rel, strings.Join(names, ", "))
		}
	}

	idx, err := a.prompt.Choose(fmt.Sprintf("Select a compose file under %s", stacksDir), items, -1)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", nil
	}
	return filepath.Join(stacksDir, files[idx]), nil
}

// reportNoChanges prints the standard decline message.
func (a *App) reportNoChanges() {
	fmt.Fprintln(a.out, "No changes made.")
}
