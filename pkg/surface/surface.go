// Package surface defines the recyclable-view UI surface an adapter renders
// onto: the registration and dequeue contract of its recycling pool, the
// callbacks it delivers, and the reusable views it hands out.
//
// All calls happen on the goroutine that owns the surface. Nothing in this
// package synchronizes.
package surface

import (
	"sync/atomic"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
)

// Element kinds for the supplementary views every sectioned surface knows.
const (
	ElementKindSectionHeader = "section-header"
	ElementKindSectionFooter = "section-footer"
)

// ID identifies one surface instance for its whole lifetime.
type ID uint64

var lastID atomic.Uint64

// NextID returns a process-unique surface id. Zero is never returned.
func NextID() ID {
	return ID(lastID.Add(1))
}

// Axis is the direction a surface scrolls in.
type Axis int

const (
	// AxisVertical scrolls top to bottom.
	AxisVertical Axis = iota
	// AxisHorizontal scrolls left to right.
	AxisHorizontal
)

// Surface is the part of a UI surface consumed while answering render
// requests: its recycling pool and its selection state.
type Surface interface {
	// SurfaceID returns the identity of this instance.
	SurfaceID() ID

	// Register binds identifier to reg in the cell pool, replacing any
	// previous binding.
	Register(identifier string, reg Registration)

	// RegisterSupplementary binds (kind, identifier) to reg.
	RegisterSupplementary(kind, identifier string, reg Registration)

	// DequeueReusableCell returns a recycled or new view for identifier, or
	// nil when identifier was never registered.
	DequeueReusableCell(identifier string, at component.IndexPath) ReusableView

	// DequeueReusableSupplementary is DequeueReusableCell keyed by kind.
	DequeueReusableSupplementary(kind, identifier string, at component.IndexPath) ReusableView

	// AllowsSelection reports whether items can be selected.
	AllowsSelection() bool

	// SelectItem marks the item at path as selected without notifying the delegate.
	SelectItem(at component.IndexPath)

	// DeselectItem clears the selection of the item at path without notifying the delegate.
	DeselectItem(at component.IndexPath)

	// IsItemSelected reports the surface's selection state at path.
	IsItemSelected(at component.IndexPath) bool

	// Bounds returns the visible bounds of the surface.
	Bounds() geometry.Rect
}

// Target is a surface an updater can bind to and refresh.
type Target interface {
	Surface

	// Bind installs the callbacks the surface delivers from now on.
	Bind(ds DataSource, d Delegate)

	// ReloadData discards every displayed view and asks the data source again.
	ReloadData()

	// ReloadItems re-requests the views at the given paths.
	ReloadItems(paths []component.IndexPath)

	// VisibleCell returns the view displayed at path, or nil.
	VisibleCell(at component.IndexPath) ReusableView
}

// Layout is implemented by surfaces arranged as a flow of items.
type Layout interface {
	ScrollAxis() Axis
	ContentInset() geometry.EdgeInsets
	// ItemSize is the default size of an item.
	ItemSize() geometry.Size
	// HeaderReferenceSize is the default size of a section header.
	HeaderReferenceSize() geometry.Size
	// FooterReferenceSize is the default size of a section footer.
	FooterReferenceSize() geometry.Size
}

// Disposable is implemented by surfaces that announce their destruction.
type Disposable interface {
	OnDispose(fn func())
}

// DataSource answers structural and render requests.
type DataSource interface {
	NumberOfSections(s Surface) int
	NumberOfItems(s Surface, section int) int
	CellForItem(s Surface, at component.IndexPath) ReusableView
	SupplementaryView(s Surface, kind string, at component.IndexPath) ReusableView
}

// Delegate receives display lifecycle, highlight and selection events.
type Delegate interface {
	ShouldHighlightItem(s Surface, at component.IndexPath) bool
	DidHighlightItem(s Surface, at component.IndexPath)
	DidUnhighlightItem(s Surface, at component.IndexPath)
	ShouldSelectItem(s Surface, at component.IndexPath) bool
	DidSelectItem(s Surface, at component.IndexPath)
	DidDeselectItem(s Surface, at component.IndexPath)
	WillDisplayCell(s Surface, view ReusableView, at component.IndexPath)
	DidEndDisplayingCell(s Surface, view ReusableView, at component.IndexPath)
	WillDisplaySupplementary(s Surface, view ReusableView, kind string, at component.IndexPath)
	DidEndDisplayingSupplementary(s Surface, view ReusableView, kind string, at component.IndexPath)
}

// LayoutDelegate sizes items and supplementary views of a flow layout.
type LayoutDelegate interface {
	SizeForItem(s Surface, at component.IndexPath) geometry.Size
	ReferenceSizeForHeader(s Surface, section int) geometry.Size
	ReferenceSizeForFooter(s Surface, section int) geometry.Size
}
