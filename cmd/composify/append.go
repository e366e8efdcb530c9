package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/margey/composify/internal/core/compose"
	"github.com/margey/composify/internal/core/service"
	"github.com/margey/composify/internal/shell/inspect"
	"github.com/margey/composify/internal/shell/store"
)

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append a service to an existing stack file",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.runAppend()
	},
}

// runAppend adds one service to a stack file chosen from a list. Name
// collisions are always rejected in this flow; replacing a service means
// editing the file by hand.
func (a *App) runAppend() error {
	composePath, err := a.selectStackFile()
	if err != nil {
		return err
	}
	if composePath == "" {
		a.reportNoChanges()
		return nil
	}

	var name string
	for {
		name, err = a.prompt.NonEmptyLine("Service/container name", "")
		if err != nil {
			return err
		}
		taken, err := inspect.HasService(composePath, name)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		fmt.Fprintf(a.out, "A service named '%s' already exists in %s.\n", name, composePath)
	}

	params, err := a.promptServiceParams(name)
	if err != nil {
		return err
	}
	svc, err := service.New(params)
	if err != nil {
		return err
	}

	node := service.Project(svc, a.cfg.Traefik.ProxyNetwork)
	preview, err := store.Dump(compose.ServiceSnippet(svc.Name, node))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nThis service will be appended to the selected compose file:")
	fmt.Fprintln(a.out, preview)

	proceed, err := a.prompt.Confirm(fmt.Sprintf("Proceed to append to %s?", composePath), true)
	if err != nil {
		return err
	}
	if !proceed {
		a.reportNoChanges()
		return nil
	}

	doc, err := store.Load(composePath)
	if err != nil {
		return err
	}
	if err := compose.UpsertService(doc, svc.Name, node, false); err != nil {
		return err
	}
	if err := store.Save(composePath, doc); err != nil {
		return err
	}

	a.logger.Info("appended service", "path", composePath, "service", svc.Name)
	fmt.Fprintf(a.out, "Service '%s' written to %s\n", svc.Name, composePath)
	return nil
}
