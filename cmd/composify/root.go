package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/margey/composify/internal/shell/prompt"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "composify",
	Short:         "Composify scaffolds and edits Docker Compose stacks, Traefik labels, networks and secrets.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(databaseCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(versionCmd)
}

// =============================================================================
// App Wiring
// =============================================================================

// App carries the configuration and I/O streams of one invocation. Flows are
// methods on App so tests can run them against scripted input and a
// temporary docker root.
type App struct {
	cfg    *Config
	logger *slog.Logger
	prompt *prompt.Prompter
	out    io.Writer
}

// newApp loads configuration, the docker root's .env file when present, and
// wires the interactive streams.
func newApp() (*App, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := SetupLogger(cfg)

	envFile := filepath.Join(cfg.Root.Dir, ".env")
	if err := godotenv.Load(envFile); err == nil {
		logger.Debug("loaded environment file", "path", envFile)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		prompt: prompt.New(os.Stdin, os.Stdout),
		out:    os.Stdout,
	}, nil
}
