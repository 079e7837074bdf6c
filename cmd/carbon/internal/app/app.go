// Package app wires a resolved document to a terminal table.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-drift/carbon/cmd/carbon/internal/catalog"
	"github.com/go-drift/carbon/cmd/carbon/internal/config"
	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/renderer"
	"github.com/go-drift/carbon/pkg/termsurface"
	"github.com/go-drift/carbon/pkg/updater"
)

// App holds one rendered document.
type App struct {
	Config   *config.Config
	Table    *termsurface.Table
	Catalog  *catalog.Catalog
	Renderer *renderer.Renderer
}

// New builds the stack for cfg and renders it once. cfg must be resolved.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg}
	var opts []catalog.Option
	if !cfg.Surface.MultipleSelection {
		opts = append(opts, catalog.WithSingleSelection())
	}
	a.Catalog = catalog.New(cfg.Sections, logger, opts...)
	a.Table = termsurface.NewTable(
		termsurface.WithSize(cfg.Surface.Width, cfg.Surface.Height),
		termsurface.WithInsets(geometry.EdgeInsets{Left: float64(cfg.Surface.Inset), Right: float64(cfg.Surface.Inset)}),
		termsurface.WithSelection(!cfg.Surface.DisableSelection, cfg.Surface.MultipleSelection),
		termsurface.WithLogger(logger),
	)

	ad := adapter.New(termsurface.AdapterOptions(
		adapter.WithLogger(logger),
		adapter.WithSelectionHandler(func(ctx adapter.EventContext) {
			a.Catalog.Select(ctx)
			a.Renderer.RenderFactory()
		}),
		adapter.WithDeselectionHandler(func(ctx adapter.EventContext) {
			a.Catalog.Deselect(ctx)
			a.Renderer.RenderFactory()
		}),
	)...)

	a.Renderer = renderer.New(ad, newUpdater(cfg.Updater, logger),
		renderer.WithFactory(a.Catalog),
		renderer.WithLogger(logger),
	)
	a.Renderer.SetTarget(a.Table)
	a.Renderer.RenderFactory()
	return a
}

func newUpdater(name string, logger *slog.Logger) renderer.Updater {
	if name == config.UpdaterReload {
		return updater.Reload{}
	}
	return &updater.Staged{Logger: logger}
}

// Model returns the interactive program model.
func (a *App) Model() termsurface.Model {
	return termsurface.NewModel(a.Table, a.Config.Title)
}

// Frame draws one frame: the title, then the table.
func (a *App) Frame() string {
	return a.Config.Title + "\n\n" + a.Table.View()
}

// Measurement is the intrinsic size of one rendered item.
type Measurement struct {
	IndexPath component.IndexPath
	ID        any
	Size      geometry.Size
}

// Measure renders every item off-screen and reports its intrinsic content
// size in points.
func (a *App) Measure() []Measurement {
	var out []Measurement
	ad := a.Renderer.Adapter()
	for s, sec := range ad.Data() {
		for i, node := range sec.Cells {
			content := node.Component.RenderContent()
			node.Component.Render(content)
			out = append(out, Measurement{
				IndexPath: component.IndexPath{Section: s, Item: i},
				ID:        node.ID,
				Size:      node.Component.IntrinsicContentSize(content),
			})
		}
	}
	return out
}

// FormatMeasurements renders ms as aligned lines.
func FormatMeasurements(ms []Measurement) string {
	var b strings.Builder
	for _, m := range ms {
		fmt.Fprintf(&b, "%-8s %6.0fx%-4.0f %v\n", m.IndexPath, m.Size.Width, m.Size.Height, m.ID)
	}
	return b.String()
}
