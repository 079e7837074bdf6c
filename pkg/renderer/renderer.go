// Package renderer drives an adapter and an updater from declarative
// section data.
//
// A Renderer owns one adapter and one updater. Until a target surface is set,
// rendering only replaces the adapter's data. Once a target is set, every
// render hands the new data to the updater, which applies it to the surface
// and commits it into the adapter before returning.
package renderer

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/errors"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// Updater applies section data to a surface.
type Updater interface {
	// Prepare is called once when target is bound to the renderer.
	Prepare(target surface.Target, a *adapter.Adapter)

	// PerformUpdates applies data to target. When it returns, the adapter
	// holds data and target displays exactly that structure.
	PerformUpdates(target surface.Target, a *adapter.Adapter, data []section.Section)
}

// ComponentsFactory produces sections on demand from external state.
type ComponentsFactory interface {
	MakeSections() []section.Section
}

// TargetSetter is implemented by factories that need the bound surface.
type TargetSetter interface {
	SetTarget(target surface.Target)
}

// Renderer renders sections onto a target through an adapter and an updater.
type Renderer struct {
	adapter *adapter.Adapter
	updater Updater
	factory ComponentsFactory
	target  surface.Target
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFactory sets the factory used by RenderFactory.
func WithFactory(f ComponentsFactory) Option {
	return func(r *Renderer) { r.factory = f }
}

// WithLogger sets the logger for render diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New returns a renderer without a target.
func New(a *adapter.Adapter, u Updater, opts ...Option) *Renderer {
	r := &Renderer{adapter: a, updater: u}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Adapter returns the adapter the renderer was built with.
func (r *Renderer) Adapter() *adapter.Adapter { return r.adapter }

// Updater returns the updater the renderer was built with.
func (r *Renderer) Updater() Updater { return r.updater }

// Factory returns the configured factory, or nil.
func (r *Renderer) Factory() ComponentsFactory { return r.factory }

// SetFactory replaces the factory. The current target, if any, is handed to
// it.
func (r *Renderer) SetFactory(f ComponentsFactory) {
	r.factory = f
	if r.target != nil {
		r.shareTarget()
	}
}

// Target returns the bound surface, or nil.
func (r *Renderer) Target() surface.Target { return r.target }

// SetTarget binds target, hands it to the factory and prepares the updater.
// A nil target unbinds; later renders only replace the adapter's data.
//
// The renderer keeps target until it is replaced or unbound. Unbind before
// discarding a surface so that it can be collected.
func (r *Renderer) SetTarget(target surface.Target) {
	r.target = target
	if target == nil {
		return
	}
	r.shareTarget()
	r.log().Debug("prepared target", "surface", target.SurfaceID())
	r.updater.Prepare(target, r.adapter)
}

// Data returns the sections the adapter currently holds.
func (r *Renderer) Data() []section.Section {
	return r.adapter.Data()
}

// Render renders data immediately.
func (r *Renderer) Render(data ...section.Section) {
	if r.target == nil {
		r.adapter.SetData(data)
		return
	}
	r.log().Debug("performing updates", "surface", r.target.SurfaceID(), "sections", len(data))
	r.updater.PerformUpdates(r.target, r.adapter, data)
}

// RenderOptional renders data, skipping nil sections.
func (r *Renderer) RenderOptional(data ...*section.Section) {
	r.Render(section.Compact(data...)...)
}

// RenderCells renders a single section holding cells. The section gets a
// fresh id on every call, so updaters treat it as a new section.
func (r *Renderer) RenderCells(cells ...section.Node) {
	r.Render(section.New(uuid.New(), cells...))
}

// RenderFactory renders the sections made by the factory. Without a factory
// the misuse is reported and nothing is rendered.
func (r *Renderer) RenderFactory() {
	if r.factory == nil {
		errors.Report(&errors.CarbonError{
			Op:   "renderer.RenderFactory",
			Kind: errors.KindMisuse,
			Err:  errors.ErrNoFactory,
		})
		return
	}
	r.Render(r.factory.MakeSections()...)
}

func (r *Renderer) shareTarget() {
	if ts, ok := r.factory.(TargetSetter); ok {
		ts.SetTarget(r.target)
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
