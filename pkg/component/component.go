package component

import (
	"fmt"

	"github.com/go-drift/carbon/pkg/geometry"
)

// IndexPath locates an item inside a sectioned surface.
type IndexPath struct {
	Section int
	Item    int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Item)
}

// Component is the required contract of a renderable unit producing content
// of type C.
type Component[C any] interface {
	// RenderContent returns a fresh content instance.
	RenderContent() C
	// Render applies the component's data onto content.
	Render(content C)
}

// Container hosts content laid out by a component.
type Container interface {
	AddContent(content any)
}

// Identifier overrides the default reuse identifier (the concrete type name).
type Identifier interface {
	ReuseIdentifier() string
}

// ReferenceSizer returns a preferred size for the given surface bounds.
// Returning false leaves sizing to the surface's default.
type ReferenceSizer interface {
	ReferenceSize(bounds geometry.Rect) (geometry.Size, bool)
}

// ContentUpdater reports whether moving from the receiver to next changes
// content. Unlike equality it may ignore fields that do not affect display.
type ContentUpdater[V any] interface {
	ShouldContentUpdate(next V) bool
}

// RenderDecider reports whether next must be rendered into content that
// currently shows the receiver.
type RenderDecider[V, C any] interface {
	ShouldRender(next V, content C) bool
}

// Layouter places content inside a container.
type Layouter[C any] interface {
	Layout(content C, container Container)
}

// IntrinsicSizer reports the natural size of content.
type IntrinsicSizer[C any] interface {
	IntrinsicContentSize(content C) geometry.Size
}

// WillDisplayer is invoked before content enters the visible area.
type WillDisplayer[C any] interface {
	ContentWillDisplay(content C)
}

// EndDisplayer is invoked after content leaves the visible area.
type EndDisplayer[C any] interface {
	ContentDidEndDisplaying(content C)
}

// HighlightDecider reports whether the item at path may be highlighted.
type HighlightDecider interface {
	ShouldHighlight(at IndexPath) bool
}

// Highlighter observes highlight changes.
type Highlighter interface {
	DidHighlight(at IndexPath)
	DidUnhighlight(at IndexPath)
}

// SelectDecider reports whether the item at path may be selected.
type SelectDecider interface {
	ShouldSelect(at IndexPath) bool
}

// SelectionObserver observes selection changes.
type SelectionObserver interface {
	DidSelect(at IndexPath)
	DidDeselect(at IndexPath)
}

// Selectable is implemented by components that declare their selection
// state. Adapters force the surface to match it after every render.
type Selectable interface {
	IsSelected() bool
}

// SelectedSetter is implemented by content that mirrors the selected flag of
// the view hosting it.
type SelectedSetter interface {
	SetSelected(selected bool)
}

// HighlightedSetter is implemented by content that mirrors the highlighted
// flag of the view hosting it.
type HighlightedSetter interface {
	SetHighlighted(highlighted bool)
}

// intrinsicContent is content able to report its own natural size.
type intrinsicContent interface {
	IntrinsicContentSize() geometry.Size
}
