package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/margey/composify/internal/core/compose"
	"github.com/margey/composify/internal/shell/secrets"
	"github.com/margey/composify/internal/shell/store"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Create a secret file and register it in the main compose file",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.runSecret()
	},
}

func (a *App) runSecret() error {
	name, err := a.prompt.NonEmptyLine("Secret name", "")
	if err != nil {
		return err
	}
	value, err := a.prompt.NonEmptyLine(fmt.Sprintf("Value for secret '%s'", name), "")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nA file will be created at %s/%s (mode 0600).\n", a.cfg.SecretsDir(), name)
	fmt.Fprintf(a.out, "The secret will be registered in %s and mounted by services at %s.\n",
		a.cfg.MainCompose(), secrets.MountPath(name))

	proceed, err := a.prompt.Confirm("Create the secret?", true)
	if err != nil {
		return err
	}
	if !proceed {
		a.reportNoChanges()
		return nil
	}

	if err := secrets.Write(a.cfg.SecretsDir(), map[string]string{name: value}); err != nil {
		return err
	}

	doc, err := store.LoadOrEmpty(a.cfg.MainCompose())
	if err != nil {
		return err
	}
	added, err := compose.UpsertSecrets(doc, "", []string{name})
	if err != nil {
		return err
	}
	if len(added) > 0 {
		if err := store.Save(a.cfg.MainCompose(), doc); err != nil {
			return err
		}
	}

	a.logger.Info("created secret", "name", name, "registered", len(added) > 0)
	fmt.Fprintf(a.out, "Secret '%s' created.\n", name)
	return nil
}
