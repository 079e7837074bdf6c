package adapter

import (
	"fmt"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/errors"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// CellForItem dequeues the cell for path, registering its reuse identifier
// first when s has not seen it or when the recycled view is not of the class
// the node requires now. The node's component is rendered into the cell and
// the surface's selection at path is forced to the component's declared
// selection state.
func (a *Adapter) CellForItem(s surface.Surface, at component.IndexPath) surface.ReusableView {
	node := a.CellNode(at)
	reg := a.resolveCellRegistration(s, at, node)
	identifier := node.Component.ReuseIdentifier()
	registry := a.Registry()

	cell := registry.DequeueCell(s, identifier, at)
	if cell == nil || !reg.Class.IsMember(cell) {
		if cell != nil {
			dequeuesTotal.WithLabelValues(scopeCell, resultClassMismatch).Inc()
			a.log().Debug("recycled cell has a stale class",
				"surface", s.SurfaceID(), "identifier", identifier,
				"want", reg.Class.Name(), "got", fmt.Sprintf("%T", cell))
		}
		registry.RegisterCell(s, identifier, reg)
		a.log().Debug("registered cell", "surface", s.SurfaceID(), "identifier", identifier, "class", reg.Class.Name())
		cell = registry.DequeueCell(s, identifier, at)
		if !a.accepted(s, "adapter.CellForItem", identifier, reg, cell) && cell == nil {
			return surface.EmptyViewClass.New()
		}
	}

	cell.Render(node.Component)
	a.reconcileSelection(s, at, node)
	return cell
}

// SupplementaryView dequeues the supplementary view of kind at path. An
// unhandled kind is reported and answered with an empty placeholder.
func (a *Adapter) SupplementaryView(s surface.Surface, kind string, at component.IndexPath) surface.ReusableView {
	node, ok := a.resolveSupplementaryNode(kind, s, at)
	if !ok {
		errors.Report(&errors.CarbonError{
			Op:      "adapter.SupplementaryView",
			Kind:    errors.KindUnhandledKind,
			Surface: uint64(s.SurfaceID()),
			Err:     fmt.Errorf("%w: %q; supply WithSupplementaryNode to adopt it", errors.ErrUnsupportedKind, kind),
		})
		return surface.EmptyViewClass.New()
	}

	reg := a.resolveSupplementaryRegistration(kind, s, at, node)
	identifier := node.Component.ReuseIdentifier()
	registry := a.Registry()

	view := registry.DequeueSupplementary(s, kind, identifier, at)
	if view == nil || !reg.Class.IsMember(view) {
		if view != nil {
			dequeuesTotal.WithLabelValues(scopeSupplementary, resultClassMismatch).Inc()
		}
		registry.RegisterSupplementary(s, kind, identifier, reg)
		a.log().Debug("registered supplementary view", "surface", s.SurfaceID(), "kind", kind, "identifier", identifier, "class", reg.Class.Name())
		view = registry.DequeueSupplementary(s, kind, identifier, at)
		if !a.accepted(s, "adapter.SupplementaryView", kind+"/"+identifier, reg, view) && view == nil {
			return surface.EmptyViewClass.New()
		}
	}

	view.Render(node.Component)
	return view
}

// accepted reports whether a view dequeued right after registration is of
// the registered class. Anything else means the surface broke its pool
// contract; it is reported and rendering carries on.
func (a *Adapter) accepted(s surface.Surface, op, identifier string, reg surface.Registration, v surface.ReusableView) bool {
	if v != nil && reg.Class.IsMember(v) {
		return true
	}
	got := "nothing"
	if v != nil {
		got = fmt.Sprintf("%T", v)
	}
	errors.Report(&errors.CarbonError{
		Op:      op,
		Kind:    errors.KindRegistry,
		Surface: uint64(s.SurfaceID()),
		Err:     fmt.Errorf("dequeue of %q after registering %s returned %s", identifier, reg.Class.Name(), got),
	})
	return false
}

func (a *Adapter) reconcileSelection(s surface.Surface, at component.IndexPath, node section.Node) {
	if !s.AllowsSelection() {
		return
	}
	selectable, ok := component.As[component.Selectable](node.Component)
	if !ok {
		return
	}
	if selectable.IsSelected() {
		s.SelectItem(at)
	} else {
		s.DeselectItem(at)
	}
}

func (a *Adapter) resolveCellRegistration(s surface.Surface, at component.IndexPath, node section.Node) surface.Registration {
	if !a.behavior.dynamic {
		class := a.behavior.class
		if class.IsZero() {
			class = surface.ComponentCellClass
		}
		return surface.Registration{Class: class}
	}
	if a.cellRegistration == nil {
		errors.Fatal(&errors.CarbonError{
			Op:      "adapter.CellForItem",
			Kind:    errors.KindConfiguration,
			Surface: uint64(s.SurfaceID()),
			Err:     errors.ErrMissingResolver,
		})
	}
	return a.cellRegistration(s, at, node)
}

func (a *Adapter) resolveSupplementaryRegistration(kind string, s surface.Surface, at component.IndexPath, node section.Node) surface.Registration {
	if a.supplementaryRegistration != nil {
		return a.supplementaryRegistration(kind, s, at, node)
	}
	return surface.Registration{Class: surface.ComponentViewClass}
}

func (a *Adapter) resolveSupplementaryNode(kind string, s surface.Surface, at component.IndexPath) (section.Node, bool) {
	if a.supplementaryNode != nil {
		return a.supplementaryNode(kind, s, at)
	}
	return a.DefaultSupplementaryNode(kind, at)
}

// DefaultSupplementaryNode resolves section headers and footers. Custom
// SupplementaryNodeFunc implementations can fall back to it.
func (a *Adapter) DefaultSupplementaryNode(kind string, at component.IndexPath) (section.Node, bool) {
	var node *section.Node
	switch kind {
	case surface.ElementKindSectionHeader:
		node = a.HeaderNode(at.Section)
	case surface.ElementKindSectionFooter:
		node = a.FooterNode(at.Section)
	}
	if node == nil {
		return section.Node{}, false
	}
	return *node, true
}
