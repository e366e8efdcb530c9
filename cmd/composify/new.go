package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/margey/composify/internal/core/compose"
	"github.com/margey/composify/internal/core/service"
	"github.com/margey/composify/internal/core/stack"
	"github.com/margey/composify/internal/shell/store"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new stack and include it in the main compose file",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.runNew()
	},
}

// runNew creates stacks/<folder>/docker-compose.yml with one service and
// registers it in the main compose include list.
func (a *App) runNew() error {
	stacksDir := a.cfg.StacksDir()

	var folder string
	for {
		var err error
		folder, err = a.prompt.NonEmptyLine(fmt.Sprintf("New stack folder name (under %s)", stacksDir), "")
		if err != nil {
			return err
		}
		stackDir := filepath.Join(stacksDir, folder)
		if _, err := os.Stat(stackDir); err == nil {
			fmt.Fprintf(a.out, "%s already exists. Please choose a different folder name.\n", stackDir)
			continue
		}
		break
	}

	name, err := a.prompt.Line("Service/container name", folder)
	if err != nil {
		return err
	}

	params, err := a.promptServiceParams(name)
	if err != nil {
		return err
	}
	svc, err := service.New(params)
	if err != nil {
		return err
	}

	stackPath := stack.ComposePath(stacksDir, folder)
	relInclude, err := stack.IncludePath(stackPath, a.cfg.Root.Dir)
	if err != nil {
		return err
	}

	stackDoc := compose.NewStackDocument(svc.Name, service.Project(svc, a.cfg.Traefik.ProxyNetwork))
	preview, err := store.Dump(stackDoc)
	if err != nil {
		return err
	}

	comment := svc.PrimaryProfileTitle()
	mainPath := a.cfg.MainCompose()

	fmt.Fprintln(a.out, "\nNew stack file will be created with content:")
	fmt.Fprintln(a.out, preview)
	fmt.Fprintf(a.out, "Main compose: %s\n", mainPath)
	fmt.Fprintln(a.out, "The following include entry will be added (with comment):")
	fmt.Fprintf(a.out, "- Path: %s\n", relInclude)
	fmt.Fprintf(a.out, "- Comment: # %s\n", comment)

	if err := a.printCurrentInclude(mainPath); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\ninclude: (to append)")
	fmt.Fprintf(a.out, "# %s\n- %s\n", comment, relInclude)

	proceed, err := a.prompt.Confirm("Proceed to create the new stack and update main include?", true)
	if err != nil {
		return err
	}
	if !proceed {
		a.reportNoChanges()
		return nil
	}

	if _, err := os.Stat(stackPath); err == nil {
		overwrite, err := a.prompt.Confirm(fmt.Sprintf("%s exists. Overwrite?", stackPath), false)
		if err != nil {
			return err
		}
		if !overwrite {
			a.reportNoChanges()
			return nil
		}
	}

	if err := store.Save(stackPath, stackDoc); err != nil {
		return err
	}
	a.logger.Info("created stack file", "path", stackPath, "service", svc.Name)
	fmt.Fprintf(a.out, "Created stack: %s\n", stackPath)

	mainDoc, err := store.LoadOrEmpty(mainPath)
	if err != nil {
		return err
	}
	added, err := compose.AppendInclude(mainDoc, relInclude, comment)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintln(a.out, "Include entry already present; no changes to include list.")
		return nil
	}
	if err := store.Save(mainPath, mainDoc); err != nil {
		return err
	}
	a.logger.Info("registered include entry", "path", mainPath, "include", relInclude)
	fmt.Fprintf(a.out, "Updated include in %s\n", mainPath)
	return a.printCurrentInclude(mainPath)
}

// printCurrentInclude shows the main file's include section, when present.
func (a *App) printCurrentInclude(mainPath string) error {
	doc, err := store.LoadOrEmpty(mainPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\ninclude: (current)")
	includeDoc := compose.IncludeOnly(doc)
	if includeDoc == nil {
		fmt.Fprintln(a.out, "include: []")
		return nil
	}
	text, err := store.Dump(includeDoc)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, text)
	return nil
}
