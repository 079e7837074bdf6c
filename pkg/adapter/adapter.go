// Package adapter projects an array of sections onto a surface.
//
// An Adapter answers the structural queries of a surface, resolves the view
// class for every requested position, registers reuse identifiers with the
// surface's pool exactly when needed, and forwards display, highlight and
// selection events to the components at the reported positions.
//
// An Adapter holds no state besides its data, its registry and the
// strategies it was built with. It is confined to the goroutine owning the
// surfaces it serves.
package adapter

import (
	"log/slog"
	"slices"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/errors"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// CellRegistrationBehavior selects how the view class of a cell is resolved.
type CellRegistrationBehavior struct {
	class   surface.Class
	dynamic bool
}

// Static uses class for every cell regardless of component type.
func Static(class surface.Class) CellRegistrationBehavior {
	return CellRegistrationBehavior{class: class}
}

// Dynamic resolves the registration per node. It requires WithCellRegistration.
func Dynamic() CellRegistrationBehavior {
	return CellRegistrationBehavior{dynamic: true}
}

// CellRegistrationFunc resolves the registration of the cell showing node.
type CellRegistrationFunc func(s surface.Surface, at component.IndexPath, node section.Node) surface.Registration

// SupplementaryRegistrationFunc resolves the registration of a supplementary view.
type SupplementaryRegistrationFunc func(kind string, s surface.Surface, at component.IndexPath, node section.Node) surface.Registration

// SupplementaryNodeFunc returns the node shown as the supplementary view of
// kind at path, or false when the kind is not handled.
type SupplementaryNodeFunc func(kind string, s surface.Surface, at component.IndexPath) (section.Node, bool)

// EventContext describes a selected or deselected cell.
type EventContext struct {
	Surface   surface.Surface
	Node      section.Node
	IndexPath component.IndexPath
}

// Adapter renders sections onto surfaces.
type Adapter struct {
	data []section.Section

	behavior                  CellRegistrationBehavior
	cellRegistration          CellRegistrationFunc
	supplementaryRegistration SupplementaryRegistrationFunc
	supplementaryNode         SupplementaryNodeFunc
	selectionHandler          func(EventContext)
	deselectionHandler        func(EventContext)

	registry *Registry
	logger   *slog.Logger
}

var (
	_ surface.DataSource     = (*Adapter)(nil)
	_ surface.Delegate       = (*Adapter)(nil)
	_ surface.LayoutDelegate = (*Adapter)(nil)
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithData sets the initial sections.
func WithData(data ...section.Section) Option {
	return func(a *Adapter) { a.data = slices.Clone(data) }
}

// WithCellRegistrationBehavior selects static or dynamic class resolution.
// The default is Static(surface.ComponentCellClass).
func WithCellRegistrationBehavior(b CellRegistrationBehavior) Option {
	return func(a *Adapter) { a.behavior = b }
}

// WithCellRegistration supplies the per-node resolver used in dynamic mode.
func WithCellRegistration(fn CellRegistrationFunc) Option {
	return func(a *Adapter) { a.cellRegistration = fn }
}

// WithSupplementaryRegistration overrides the registration of supplementary
// views. The default registers surface.ComponentViewClass.
func WithSupplementaryRegistration(fn SupplementaryRegistrationFunc) Option {
	return func(a *Adapter) { a.supplementaryRegistration = fn }
}

// WithSupplementaryNode overrides node resolution for supplementary kinds.
// The default handles section headers and footers.
func WithSupplementaryNode(fn SupplementaryNodeFunc) Option {
	return func(a *Adapter) { a.supplementaryNode = fn }
}

// WithSelectionHandler receives every cell selection after the component.
func WithSelectionHandler(fn func(EventContext)) Option {
	return func(a *Adapter) { a.selectionHandler = fn }
}

// WithDeselectionHandler receives every cell deselection after the component.
func WithDeselectionHandler(fn func(EventContext)) Option {
	return func(a *Adapter) { a.deselectionHandler = fn }
}

// WithRegistry shares a reuse registry. Each adapter owns a fresh one by default.
func WithRegistry(r *Registry) Option {
	return func(a *Adapter) { a.registry = r }
}

// WithLogger sets the logger for registration diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// New returns an adapter. Selecting dynamic registration without a resolver
// is a configuration error and panics.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		behavior: Static(surface.ComponentCellClass),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.behavior.dynamic && a.cellRegistration == nil {
		errors.Fatal(&errors.CarbonError{
			Op:   "adapter.New",
			Kind: errors.KindConfiguration,
			Err:  errors.ErrMissingResolver,
		})
	}
	return a
}

// Data returns a copy of the sections currently held.
func (a *Adapter) Data() []section.Section {
	return slices.Clone(a.data)
}

// SetData replaces the sections wholesale.
func (a *Adapter) SetData(data []section.Section) {
	a.data = slices.Clone(data)
}

// Registry returns the reuse registry of the adapter.
func (a *Adapter) Registry() *Registry {
	if a.registry == nil {
		a.registry = NewRegistry()
	}
	return a.registry
}

// Detach drops the registry record of s. Call it when s is destroyed and
// does not implement surface.Disposable.
func (a *Adapter) Detach(s surface.Surface) {
	a.Registry().Forget(s.SurfaceID())
}

// RegisteredSupplementaryKinds returns the supplementary kinds registered on s.
func (a *Adapter) RegisteredSupplementaryKinds(s surface.Surface) []string {
	return a.Registry().SupplementaryKinds(s)
}

// CellNode returns the node at path.
func (a *Adapter) CellNode(at component.IndexPath) section.Node {
	return a.data[at.Section].Cells[at.Item]
}

// CellNodes returns the cell nodes of a section.
func (a *Adapter) CellNodes(sec int) []section.Node {
	return a.data[sec].Cells
}

// HeaderNode returns the header of a section, or nil.
func (a *Adapter) HeaderNode(sec int) *section.Node {
	return a.data[sec].Header
}

// FooterNode returns the footer of a section, or nil.
func (a *Adapter) FooterNode(sec int) *section.Node {
	return a.data[sec].Footer
}

// NumberOfSections returns the number of sections.
func (a *Adapter) NumberOfSections(surface.Surface) int {
	return len(a.data)
}

// NumberOfItems returns the number of cell nodes in a section.
func (a *Adapter) NumberOfItems(_ surface.Surface, sec int) int {
	return len(a.CellNodes(sec))
}

func (a *Adapter) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}
