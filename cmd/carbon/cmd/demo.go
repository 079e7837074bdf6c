package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/go-drift/carbon/cmd/carbon/internal/app"
)

func demoCmd() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Browse the document interactively",
		Description: `Open the document in the terminal. Move with the arrow keys or j/k,
select with enter or space and quit with q.

Logs go to --log-file when set and are discarded otherwise, so they do not
draw over the table.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "serve Prometheus metrics on this address, e.g. :9090",
				Sources: cli.EnvVars("CARBON_METRICS_ADDR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := slog.Default()
			if cmd.String("log-file") == "" {
				logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
				slog.SetDefault(logger)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if addr := cmd.String("metrics-addr"); addr != "" {
				stop, err := serveMetrics(addr, logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			a := app.New(cfg, logger)
			p := tea.NewProgram(a.Model(), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("demo: %w", err)
			}
			for _, key := range a.Catalog.Selected() {
				fmt.Fprintln(cmd.Root().Writer, key)
			}
			return nil
		},
	}
}

// serveMetrics exposes the default registry on addr until the returned
// function is called.
func serveMetrics(addr string, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
