package component

import (
	"fmt"
	"reflect"

	"github.com/go-drift/carbon/pkg/geometry"
)

// AnyComponent is a type-erased component. It satisfies Component[any] so
// it can be passed anywhere a component is expected, including to Erase.
//
// The zero AnyComponent wraps nothing: it renders nothing and answers every
// predicate with its default.
type AnyComponent struct {
	box anyBox
}

// Erase wraps base in an AnyComponent. If base already is an AnyComponent,
// or a pointer to one, that AnyComponent is returned; a nil pointer yields
// the zero AnyComponent.
//
// C is the content type produced by base and usually has to be spelled out:
//
//	component.Erase[*TextContent](Label{Text: "hi"})
func Erase[C any, V Component[C]](base V) AnyComponent {
	switch erased := any(base).(type) {
	case AnyComponent:
		return erased
	case *AnyComponent:
		if erased == nil {
			return AnyComponent{}
		}
		return *erased
	}
	return AnyComponent{box: &box[C, V]{value: base}}
}

// As recovers the wrapped value as T. T may be the concrete type or any
// interface the concrete type implements.
func As[T any](c AnyComponent) (T, bool) {
	t, ok := c.Base().(T)
	return t, ok
}

// Base returns the wrapped value, or nil for the zero AnyComponent.
func (c AnyComponent) Base() any {
	if c.box == nil {
		return nil
	}
	return c.box.base()
}

// IsZero reports whether c wraps nothing.
func (c AnyComponent) IsZero() bool {
	return c.box == nil
}

// ReuseIdentifier returns the identifier of the wrapped component.
func (c AnyComponent) ReuseIdentifier() string {
	if c.box == nil {
		return ""
	}
	return c.box.reuseIdentifier()
}

// RenderContent returns a new content instance from the wrapped component.
func (c AnyComponent) RenderContent() any {
	if c.box == nil {
		return nil
	}
	return c.box.renderContent()
}

// Render renders the wrapped component into content.
func (c AnyComponent) Render(content any) {
	if c.box != nil {
		c.box.render(content)
	}
}

// ReferenceSize returns the preferred size within bounds. The boolean is
// false when the surface should use its own default size.
func (c AnyComponent) ReferenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	if c.box == nil {
		return geometry.Size{}, false
	}
	return c.box.referenceSize(bounds)
}

// Layout places content inside container.
func (c AnyComponent) Layout(content any, container Container) {
	if c.box != nil {
		c.box.layout(content, container)
	}
}

// IntrinsicContentSize returns the natural size of content.
func (c AnyComponent) IntrinsicContentSize(content any) geometry.Size {
	if c.box == nil {
		return geometry.Size{}
	}
	return c.box.intrinsicContentSize(content)
}

// ShouldContentUpdate reports whether next changes content. Components of
// different concrete types always update.
func (c AnyComponent) ShouldContentUpdate(next AnyComponent) bool {
	if c.box == nil || next.box == nil {
		return c.box != next.box
	}
	return c.box.shouldContentUpdate(next.box)
}

// ShouldRender reports whether next must be rendered into content. Components
// of different concrete types, or foreign content, always render.
func (c AnyComponent) ShouldRender(next AnyComponent, content any) bool {
	if c.box == nil || next.box == nil {
		return true
	}
	return c.box.shouldRender(next.box, content)
}

// ContentWillDisplay notifies the wrapped component that content is about to
// become visible.
func (c AnyComponent) ContentWillDisplay(content any) {
	if c.box != nil {
		c.box.contentWillDisplay(content)
	}
}

// ContentDidEndDisplaying notifies the wrapped component that content left
// the visible area.
func (c AnyComponent) ContentDidEndDisplaying(content any) {
	if c.box != nil {
		c.box.contentDidEndDisplaying(content)
	}
}

// ShouldHighlight reports whether the item at path may be highlighted.
func (c AnyComponent) ShouldHighlight(at IndexPath) bool {
	if c.box == nil {
		return true
	}
	return c.box.shouldHighlight(at)
}

// DidHighlight forwards a highlight event.
func (c AnyComponent) DidHighlight(at IndexPath) {
	if c.box != nil {
		c.box.didHighlight(at)
	}
}

// DidUnhighlight forwards an unhighlight event.
func (c AnyComponent) DidUnhighlight(at IndexPath) {
	if c.box != nil {
		c.box.didUnhighlight(at)
	}
}

// ShouldSelect reports whether the item at path may be selected.
func (c AnyComponent) ShouldSelect(at IndexPath) bool {
	if c.box == nil {
		return true
	}
	return c.box.shouldSelect(at)
}

// DidSelect forwards a selection event.
func (c AnyComponent) DidSelect(at IndexPath) {
	if c.box != nil {
		c.box.didSelect(at)
	}
}

// DidDeselect forwards a deselection event.
func (c AnyComponent) DidDeselect(at IndexPath) {
	if c.box != nil {
		c.box.didDeselect(at)
	}
}

func (c AnyComponent) String() string {
	return fmt.Sprintf("AnyComponent(%v)", c.Base())
}

type anyBox interface {
	base() any
	reuseIdentifier() string
	renderContent() any
	render(content any)
	referenceSize(bounds geometry.Rect) (geometry.Size, bool)
	layout(content any, container Container)
	intrinsicContentSize(content any) geometry.Size
	shouldContentUpdate(next anyBox) bool
	shouldRender(next anyBox, content any) bool
	contentWillDisplay(content any)
	contentDidEndDisplaying(content any)
	shouldHighlight(at IndexPath) bool
	didHighlight(at IndexPath)
	didUnhighlight(at IndexPath)
	shouldSelect(at IndexPath) bool
	didSelect(at IndexPath)
	didDeselect(at IndexPath)
}

// box keeps the concrete types V and C so that content and peers crossing
// the erased boundary can be recovered.
type box[C any, V Component[C]] struct {
	value V
}

func (b *box[C, V]) base() any {
	return b.value
}

func (b *box[C, V]) reuseIdentifier() string {
	if id, ok := any(b.value).(Identifier); ok {
		return id.ReuseIdentifier()
	}
	return reflect.TypeFor[V]().String()
}

func (b *box[C, V]) renderContent() any {
	return b.value.RenderContent()
}

func (b *box[C, V]) render(content any) {
	c, ok := content.(C)
	if !ok {
		return
	}
	b.value.Render(c)
}

func (b *box[C, V]) referenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	if s, ok := any(b.value).(ReferenceSizer); ok {
		return s.ReferenceSize(bounds)
	}
	return geometry.Size{}, false
}

func (b *box[C, V]) layout(content any, container Container) {
	c, ok := content.(C)
	if !ok {
		return
	}
	if l, ok := any(b.value).(Layouter[C]); ok {
		l.Layout(c, container)
		return
	}
	if container != nil {
		container.AddContent(c)
	}
}

func (b *box[C, V]) intrinsicContentSize(content any) geometry.Size {
	c, ok := content.(C)
	if !ok {
		return geometry.Size{}
	}
	if s, ok := any(b.value).(IntrinsicSizer[C]); ok {
		return s.IntrinsicContentSize(c)
	}
	if s, ok := any(c).(intrinsicContent); ok {
		return s.IntrinsicContentSize()
	}
	return geometry.Size{}
}

func (b *box[C, V]) shouldContentUpdate(next anyBox) bool {
	n, ok := next.base().(V)
	if !ok {
		return true
	}
	if u, ok := any(b.value).(ContentUpdater[V]); ok {
		return u.ShouldContentUpdate(n)
	}
	return false
}

func (b *box[C, V]) shouldRender(next anyBox, content any) bool {
	n, ok := next.base().(V)
	if !ok {
		return true
	}
	c, ok := content.(C)
	if !ok {
		return true
	}
	if d, ok := any(b.value).(RenderDecider[V, C]); ok {
		return d.ShouldRender(n, c)
	}
	return true
}

func (b *box[C, V]) contentWillDisplay(content any) {
	c, ok := content.(C)
	if !ok {
		return
	}
	if w, ok := any(b.value).(WillDisplayer[C]); ok {
		w.ContentWillDisplay(c)
	}
}

func (b *box[C, V]) contentDidEndDisplaying(content any) {
	c, ok := content.(C)
	if !ok {
		return
	}
	if e, ok := any(b.value).(EndDisplayer[C]); ok {
		e.ContentDidEndDisplaying(c)
	}
}

func (b *box[C, V]) shouldHighlight(at IndexPath) bool {
	if d, ok := any(b.value).(HighlightDecider); ok {
		return d.ShouldHighlight(at)
	}
	return true
}

func (b *box[C, V]) didHighlight(at IndexPath) {
	if h, ok := any(b.value).(Highlighter); ok {
		h.DidHighlight(at)
	}
}

func (b *box[C, V]) didUnhighlight(at IndexPath) {
	if h, ok := any(b.value).(Highlighter); ok {
		h.DidUnhighlight(at)
	}
}

func (b *box[C, V]) shouldSelect(at IndexPath) bool {
	if d, ok := any(b.value).(SelectDecider); ok {
		return d.ShouldSelect(at)
	}
	return true
}

func (b *box[C, V]) didSelect(at IndexPath) {
	if s, ok := any(b.value).(SelectionObserver); ok {
		s.DidSelect(at)
	}
}

func (b *box[C, V]) didDeselect(at IndexPath) {
	if s, ok := any(b.value).(SelectionObserver); ok {
		s.DidDeselect(at)
	}
}
