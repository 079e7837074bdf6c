// Package cmd defines the carbon command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/go-drift/carbon/cmd/carbon/internal/config"
	"github.com/go-drift/carbon/pkg/errors"
)

const name = "carbon"

// New returns the root command.
func New(version string) *cli.Command {
	var logFile *os.File
	return &cli.Command{
		Name:                  name,
		Usage:                 "Render declarative sections onto a terminal table",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the document (default is ./" + config.FileName + " when present)",
				Sources: cli.EnvVars("CARBON_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "write logs to this file instead of stderr",
				Sources: cli.EnvVars("CARBON_LOG_FILE"),
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "override the surface width in cells",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "override the surface height in rows",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var w io.Writer = cmd.ErrWriter
			if w == nil {
				w = os.Stderr
			}
			if path := cmd.String("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return ctx, fmt.Errorf("failed to open log file: %w", err)
				}
				logFile = f
				w = f
			}
			logger, err := newLogger(w, cmd.String("log-level"), version)
			if err != nil {
				return ctx, err
			}
			slog.SetDefault(logger)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: logger.Enabled(ctx, slog.LevelDebug)})
			return ctx, nil
		},
		After: func(context.Context, *cli.Command) error {
			errors.SetHandler(nil)
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			demoCmd(),
			renderCmd(),
		},
	}
}

// loadConfig loads the --config document, or carbon.yaml in the working
// directory when present, and applies the size overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	var cfg *config.Config
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
		dir = filepath.Dir(path)
	} else {
		cfg, err = config.LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}

	if w := cmd.Int("width"); w > 0 {
		cfg.Surface.Width = w
	}
	if h := cmd.Int("height"); h > 0 {
		cfg.Surface.Height = h
	}
	resolved, err := config.Resolve(cfg, dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("config resolved",
		"title", resolved.Title,
		"version", resolved.Version,
		"updater", resolved.Updater,
		"sections", len(resolved.Sections))
	return resolved, nil
}
