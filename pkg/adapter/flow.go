package adapter

import (
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// SizeForItem returns the reference size of the component at path, measured
// against the surface bounds minus the content insets across the scroll
// axis. Without a reference size it falls back to the layout's item size.
func (a *Adapter) SizeForItem(s surface.Surface, at component.IndexPath) geometry.Size {
	node := a.CellNode(at)
	bounds := s.Bounds()
	layout, isFlow := s.(surface.Layout)
	if isFlow {
		insets := layout.ContentInset()
		switch layout.ScrollAxis() {
		case surface.AxisHorizontal:
			bounds.Bottom -= insets.Vertical()
		case surface.AxisVertical:
			bounds.Right -= insets.Horizontal()
		}
	}
	if size, ok := node.Component.ReferenceSize(bounds); ok {
		return size
	}
	if isFlow {
		return layout.ItemSize()
	}
	return geometry.Size{}
}

// ReferenceSizeForHeader returns the header size of a section, zero when the
// section has no header.
func (a *Adapter) ReferenceSizeForHeader(s surface.Surface, sec int) geometry.Size {
	return supplementarySize(s, a.HeaderNode(sec), func(l surface.Layout) geometry.Size {
		return l.HeaderReferenceSize()
	})
}

// ReferenceSizeForFooter returns the footer size of a section, zero when the
// section has no footer.
func (a *Adapter) ReferenceSizeForFooter(s surface.Surface, sec int) geometry.Size {
	return supplementarySize(s, a.FooterNode(sec), func(l surface.Layout) geometry.Size {
		return l.FooterReferenceSize()
	})
}

func supplementarySize(s surface.Surface, node *section.Node, fallback func(surface.Layout) geometry.Size) geometry.Size {
	if node == nil {
		return geometry.Size{}
	}
	if size, ok := node.Component.ReferenceSize(s.Bounds()); ok {
		return size
	}
	if layout, ok := s.(surface.Layout); ok {
		return fallback(layout)
	}
	return geometry.Size{}
}
