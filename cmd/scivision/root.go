package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ekisa-team/scivision/internal/backend"
	"github.com/ekisa-team/scivision/internal/config"
	"github.com/ekisa-team/scivision/internal/env"
	"github.com/ekisa-team/scivision/internal/envvar"
	"github.com/ekisa-team/scivision/internal/logger"
	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/ekisa-team/scivision/internal/model"
	"github.com/spf13/cobra"
)

// app holds the state shared by subcommands after the root pre-run.
type app struct {
	config   *config.Config
	resolver *manifest.Resolver
	registry *backend.Registry
	commands []backend.Backend
}

var state = &app{}

var rootCmd = &cobra.Command{
	Use:           "scivision",
	Short:         "Load and run pretrained models described by .scivision-config.yaml manifests",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return state.setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return state.teardown()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default $SCIVISION_CONFIG or the user config directory)")
	rootCmd.PersistentFlags().String("base-url", "", "manifest base URL template, {location} is replaced with the model location")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
}

// setup loads configuration, configures logging and registers command backends.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	optional := path == ""
	if optional {
		path = os.Getenv(envvar.ScivisionConfig)
		optional = path == ""
	}
	if optional {
		path = filepath.Join(config.DefaultConfigPath(), "config.yaml")
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLevel(logger.ParseLevel(cfg.Log.Level)),
			logger.WithLogToFile(cfg.Log.ToFile),
			logger.WithLogFile(cfg.Log.File),
		),
	)

	a.config = cfg
	a.resolver = manifest.NewResolver(
		manifest.WithBaseURL(cfg.Source.BaseURL),
		manifest.WithFilename(cfg.Source.ManifestFilename),
	)
	// Command backends live only for this invocation; in-process packages
	// registered on the default registry are shared.
	a.registry = backend.Default().Clone()
	a.commands = nil

	for name, c := range cfg.Backends.Commands {
		b, err := backend.NewCommandBackend(name, c.Binary, c.Timeout)
		if err != nil {
			slog.Warn("Skipping command backend", "name", name, "binary", c.Binary, "error", err)
			continue
		}
		if err := a.registry.Register(b); err != nil {
			return err
		}
		a.commands = append(a.commands, b)
		slog.Debug("Command backend registered", "name", name, "binary", c.Binary)
	}

	return nil
}

// teardown closes the command backends registered by setup.
func (a *app) teardown() error {
	var errs []error
	for _, b := range a.commands {
		if err := b.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close backend %s: %w", b.Name(), err))
		}
	}
	a.commands = nil

	return errors.Join(errs...)
}

// loader returns a model loader bound to the configured resolver and registry.
func (a *app) loader(opts ...model.Option) *model.Loader {
	return model.NewLoader(append([]model.Option{
		model.WithResolver(a.resolver),
		model.WithRegistry(a.registry),
	}, opts...)...)
}
