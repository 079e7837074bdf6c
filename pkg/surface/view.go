package surface

import (
	"github.com/go-drift/carbon/pkg/component"
)

// ReusableView is a recyclable view instance that renders components into
// the content it hosts.
type ReusableView interface {
	// Render shows c, reusing the hosted content when possible.
	Render(c component.AnyComponent)
	// RenderedComponent returns the last rendered component.
	RenderedComponent() component.AnyComponent
	// RenderedContent returns the hosted content, or nil before the first render.
	RenderedContent() any
	ContentWillDisplay()
	ContentDidEndDisplaying()
	SetSelected(selected bool)
	IsSelected() bool
	SetHighlighted(highlighted bool)
	IsHighlighted() bool
	// PrepareForReuse is called by pools before a queued view is handed out again.
	PrepareForReuse()
}

// Host implements ReusableView. Embed it in concrete view types and use
// them through pointers:
//
//	type Cell struct {
//	    surface.Host
//	}
//
//	var CellClass = surface.ClassOf(func() *Cell { return &Cell{} })
//
// Host is also the Container content is laid out in.
type Host struct {
	content     any
	rendered    component.AnyComponent
	contents    []any
	selected    bool
	highlighted bool
	renders     int
	reuses      int

	// DidRender, if set, runs after every Render.
	DidRender func()
}

// Render shows c. Content is created and laid out on first use; afterwards
// the previously rendered component decides whether c must be rendered again.
func (h *Host) Render(c component.AnyComponent) {
	switch {
	case h.content != nil && !h.rendered.IsZero() && !h.rendered.ShouldRender(c, h.content):
	case h.content != nil:
		c.Render(h.content)
	default:
		content := c.RenderContent()
		c.Layout(content, h)
		h.content = content
		c.Render(content)
		h.applySelected()
		h.applyHighlighted()
	}
	h.rendered = c
	h.renders++
	if h.DidRender != nil {
		h.DidRender()
	}
}

// RenderedComponent returns the last rendered component.
func (h *Host) RenderedComponent() component.AnyComponent {
	return h.rendered
}

// RenderedContent returns the hosted content.
func (h *Host) RenderedContent() any {
	return h.content
}

// AddContent records content laid out into this host.
func (h *Host) AddContent(content any) {
	h.contents = append(h.contents, content)
}

// Contents returns everything laid out into this host.
func (h *Host) Contents() []any {
	return h.contents
}

// RenderCount returns how many times Render ran.
func (h *Host) RenderCount() int {
	return h.renders
}

// ReuseCount returns how many times the view was handed out from a queue.
func (h *Host) ReuseCount() int {
	return h.reuses
}

// ContentWillDisplay forwards to the rendered component.
func (h *Host) ContentWillDisplay() {
	if h.content != nil {
		h.rendered.ContentWillDisplay(h.content)
	}
}

// ContentDidEndDisplaying forwards to the rendered component.
func (h *Host) ContentDidEndDisplaying() {
	if h.content != nil {
		h.rendered.ContentDidEndDisplaying(h.content)
	}
}

// SetSelected sets the selected flag and mirrors it into the content.
func (h *Host) SetSelected(selected bool) {
	h.selected = selected
	h.applySelected()
}

// IsSelected returns the selected flag.
func (h *Host) IsSelected() bool {
	return h.selected
}

// SetHighlighted sets the highlighted flag and mirrors it into the content.
func (h *Host) SetHighlighted(highlighted bool) {
	h.highlighted = highlighted
	h.applyHighlighted()
}

// IsHighlighted returns the highlighted flag.
func (h *Host) IsHighlighted() bool {
	return h.highlighted
}

// PrepareForReuse keeps content and flags; only the reuse count changes.
func (h *Host) PrepareForReuse() {
	h.reuses++
}

func (h *Host) applySelected() {
	if s, ok := h.content.(component.SelectedSetter); ok {
		s.SetSelected(h.selected)
	}
}

func (h *Host) applyHighlighted() {
	if s, ok := h.content.(component.HighlightedSetter); ok {
		s.SetHighlighted(h.highlighted)
	}
}
