package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/margey/composify/internal/core/compose"
	"github.com/margey/composify/internal/core/database"
	"github.com/margey/composify/internal/core/service"
	"github.com/margey/composify/internal/core/stack"
	"github.com/margey/composify/internal/core/subnet"
	"github.com/margey/composify/internal/shell/inspect"
	"github.com/margey/composify/internal/shell/secrets"
	"github.com/margey/composify/internal/shell/store"
)

var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Scaffold a database service with a dedicated network and secrets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.runDatabase()
	},
}

// runDatabase scaffolds a database for one application: the service in the
// app's stack file, a dedicated internal network and the secret
// registrations in the main compose file, the secret files themselves, and
// optional network attachments for other services.
func (a *App) runDatabase() error {
	composePath, err := a.selectStackFile()
	if err != nil {
		return err
	}
	if composePath == "" {
		a.reportNoChanges()
		return nil
	}

	appName, err := stack.AppName(composePath, a.cfg.StacksDir())
	if err != nil {
		return err
	}

	engineNames := make([]string, len(database.Engines))
	for i, e := range database.Engines {
		engineNames[i] = e.Name
	}
	engineIdx, err := a.prompt.Choose("Select database engine:", engineNames, 0)
	if err != nil {
		return err
	}
	if engineIdx < 0 {
		a.reportNoChanges()
		return nil
	}
	engine := database.Engines[engineIdx]

	var serviceName string
	for {
		serviceName, err = a.prompt.Line("Database service name", appName+"-db")
		if err != nil {
			return err
		}
		taken, err := inspect.HasService(composePath, serviceName)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		fmt.Fprintf(a.out, "A service named '%s' already exists in %s.\n", serviceName, composePath)
	}

	plan, err := database.NewPlan(appName, serviceName, engine)
	if err != nil {
		return err
	}

	values := make(map[string]string, len(plan.SecretNames))
	for _, name := range plan.SecretNames {
		values[name], err = a.prompt.NonEmptyLine(fmt.Sprintf("Value for secret '%s'", name), "")
		if err != nil {
			return err
		}
	}

	mainDoc, err := store.LoadOrEmpty(a.cfg.MainCompose())
	if err != nil {
		return err
	}
	pool, err := subnet.NewPool(a.cfg.Network.SubnetBase, a.cfg.Network.SubnetCount)
	if err != nil {
		return err
	}
	cidr, err := pool.Pick(compose.UsedSubnets(mainDoc))
	if err != nil {
		return err
	}

	sameAttach, err := a.promptAttachments(composePath, "this stack", serviceName)
	if err != nil {
		return err
	}
	viewerAttach, err := a.promptAttachments(a.cfg.ViewerCompose(), "the viewer stack", "")
	if err != nil {
		return err
	}

	node := service.Project(plan.Service, a.cfg.Traefik.ProxyNetwork)
	if err := a.previewDatabase(plan, node, cidr, sameAttach, viewerAttach); err != nil {
		return err
	}

	proceed, err := a.prompt.Confirm("Proceed to scaffold the database?", true)
	if err != nil {
		return err
	}
	if !proceed {
		a.reportNoChanges()
		return nil
	}

	// Secret files first: they fail cheaply on collisions and nothing else
	// references them until the compose files are written.
	if err := secrets.Write(a.cfg.SecretsDir(), values); err != nil {
		return err
	}

	stackDoc, err := store.Load(composePath)
	if err != nil {
		return err
	}
	if err := compose.UpsertService(stackDoc, plan.ServiceName, node, false); err != nil {
		return err
	}
	for _, name := range sameAttach {
		if _, err := compose.AttachNetwork(stackDoc, name, plan.NetworkName); err != nil {
			return err
		}
	}
	if err := store.Save(composePath, stackDoc); err != nil {
		return err
	}

	comment := plan.GroupComment(plan.Service.PrimaryProfileTitle())
	if err := compose.UpsertNetwork(mainDoc, plan.NetworkName, cidr, true); err != nil {
		return err
	}
	if _, err := compose.UpsertSecrets(mainDoc, comment, plan.SecretNames); err != nil {
		return err
	}
	if err := store.Save(a.cfg.MainCompose(), mainDoc); err != nil {
		return err
	}

	if len(viewerAttach) > 0 {
		viewerDoc, err := store.Load(a.cfg.ViewerCompose())
		if err != nil {
			return err
		}
		changed := false
		for _, name := range viewerAttach {
			c, err := compose.AttachNetwork(viewerDoc, name, plan.NetworkName)
			if err != nil {
				return err
			}
			changed = changed || c
		}
		if changed {
			if err := store.Save(a.cfg.ViewerCompose(), viewerDoc); err != nil {
				return err
			}
		}
	}

	a.logger.Info("scaffolded database",
		"app", appName,
		"service", plan.ServiceName,
		"network", plan.NetworkName,
		"subnet", cidr,
	)
	fmt.Fprintf(a.out, "Database '%s' scaffolded for %s (network %s, subnet %s)\n",
		plan.ServiceName, appName, plan.NetworkName, cidr)
	return nil
}

// promptAttachments asks which services in a compose file should join the
// new network. Unknown names are dropped with a warning. A missing file is
// skipped silently: the viewer stack is optional.
func (a *App) promptAttachments(composePath, where, exclude string) ([]string, error) {
	if _, err := os.Stat(composePath); err != nil {
		return nil, nil
	}
	names, err := inspect.ServiceNames(composePath)
	if err != nil {
		return nil, err
	}
	candidates := make([]string, 0, len(names))
	for _, n := range names {
		if n != exclude {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	fmt.Fprintf(a.out, "Services in %s: %s\n", where, strings.Join(candidates, ", "))
	chosen, err := a.prompt.CommaList(fmt.Sprintf("Attach the network to services in %s (comma-separated, optional)", where))
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(candidates))
	for _, n := range candidates {
		known[n] = true
	}
	var out []string
	for _, n := range chosen {
		if known[n] {
			out = append(out, n)
		} else {
			fmt.Fprintf(a.out, "Ignoring unknown service '%s'.\n", n)
		}
	}
	return out, nil
}

// previewDatabase prints everything the scaffold is about to write.
func (a *App) previewDatabase(plan database.Plan, node *yaml.Node, cidr string, sameAttach, viewerAttach []string) error {
	serviceText, err := store.Dump(compose.ServiceSnippet(plan.ServiceName, node))
	if err != nil {
		return err
	}

	networkDoc := compose.NewDocument()
	if err := compose.UpsertNetwork(networkDoc, plan.NetworkName, cidr, true); err != nil {
		return err
	}
	networkText, err := store.Dump(networkDoc)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nThis service will be added to the selected compose file:")
	fmt.Fprintln(a.out, serviceText)
	fmt.Fprintln(a.out, "This network will be added to the main compose file:")
	fmt.Fprintln(a.out, networkText)
	fmt.Fprintf(a.out, "Secret files to create under %s: %s\n",
		a.cfg.SecretsDir(), strings.Join(plan.SecretNames, ", "))
	if len(sameAttach) > 0 {
		fmt.Fprintf(a.out, "Network attached to: %s\n", strings.Join(sameAttach, ", "))
	}
	if len(viewerAttach) > 0 {
		fmt.Fprintf(a.out, "Network attached in viewer stack to: %s\n", strings.Join(viewerAttach, ", "))
	}
	return nil
}
