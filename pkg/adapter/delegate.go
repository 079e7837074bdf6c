package adapter

import (
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/surface"
)

// ShouldHighlightItem asks the component at path.
func (a *Adapter) ShouldHighlightItem(_ surface.Surface, at component.IndexPath) bool {
	return a.CellNode(at).Component.ShouldHighlight(at)
}

// DidHighlightItem notifies the component at path.
func (a *Adapter) DidHighlightItem(_ surface.Surface, at component.IndexPath) {
	a.CellNode(at).Component.DidHighlight(at)
}

// DidUnhighlightItem notifies the component at path.
func (a *Adapter) DidUnhighlightItem(_ surface.Surface, at component.IndexPath) {
	a.CellNode(at).Component.DidUnhighlight(at)
}

// ShouldSelectItem asks the component at path.
func (a *Adapter) ShouldSelectItem(_ surface.Surface, at component.IndexPath) bool {
	return a.CellNode(at).Component.ShouldSelect(at)
}

// DidSelectItem notifies the component at path, then the selection handler.
func (a *Adapter) DidSelectItem(s surface.Surface, at component.IndexPath) {
	node := a.CellNode(at)
	node.Component.DidSelect(at)
	if a.selectionHandler == nil {
		return
	}
	a.selectionHandler(EventContext{Surface: s, Node: node, IndexPath: at})
}

// DidDeselectItem notifies the component at path, then the deselection handler.
func (a *Adapter) DidDeselectItem(s surface.Surface, at component.IndexPath) {
	node := a.CellNode(at)
	node.Component.DidDeselect(at)
	if a.deselectionHandler != nil {
		a.deselectionHandler(EventContext{Surface: s, Node: node, IndexPath: at})
	}
}

// WillDisplayCell forwards to the component rendered in view.
func (a *Adapter) WillDisplayCell(_ surface.Surface, view surface.ReusableView, _ component.IndexPath) {
	if view != nil {
		view.ContentWillDisplay()
	}
}

// DidEndDisplayingCell forwards to the component rendered in view.
func (a *Adapter) DidEndDisplayingCell(_ surface.Surface, view surface.ReusableView, _ component.IndexPath) {
	if view != nil {
		view.ContentDidEndDisplaying()
	}
}

// WillDisplaySupplementary forwards to the component rendered in view.
func (a *Adapter) WillDisplaySupplementary(_ surface.Surface, view surface.ReusableView, _ string, _ component.IndexPath) {
	if view != nil {
		view.ContentWillDisplay()
	}
}

// DidEndDisplayingSupplementary forwards to the component rendered in view.
func (a *Adapter) DidEndDisplayingSupplementary(_ surface.Surface, view surface.ReusableView, _ string, _ component.IndexPath) {
	if view != nil {
		view.ContentDidEndDisplaying()
	}
}
