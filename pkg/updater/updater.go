// Package updater provides the updaters a renderer applies data with.
//
// [Reload] redisplays the whole surface on every render. [Staged] compares
// the structure of the old and new data by section and node id and, when it
// is unchanged, reloads only the items whose content changed.
package updater

import (
	"log/slog"
	"reflect"

	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// Reload binds the adapter and reloads the whole surface on every update.
type Reload struct{}

// Prepare binds a as the data source and delegate of target and displays
// the data a already holds.
func (Reload) Prepare(target surface.Target, a *adapter.Adapter) {
	target.Bind(a, a)
	target.ReloadData()
}

// PerformUpdates commits data and reloads target.
func (Reload) PerformUpdates(target surface.Target, a *adapter.Adapter, data []section.Section) {
	a.SetData(data)
	target.ReloadData()
}

// Staged reloads only changed items while the structure stays the same.
//
// The structure is the same when both renders have the same section ids in
// the same order, the same header and footer ids, and the same cell node
// ids in the same order. Any other change, including a changed header or
// footer, reloads the whole surface.
type Staged struct {
	// AlwaysRenderVisibleComponents renders the new component into every
	// visible cell that is not reloaded. Its ShouldRender still decides
	// whether the content is touched.
	AlwaysRenderVisibleComponents bool

	// Logger receives update diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Prepare binds a as the data source and delegate of target and displays
// the data a already holds.
func (s *Staged) Prepare(target surface.Target, a *adapter.Adapter) {
	target.Bind(a, a)
	target.ReloadData()
}

// PerformUpdates commits data and applies the smallest reload it can.
func (s *Staged) PerformUpdates(target surface.Target, a *adapter.Adapter, data []section.Section) {
	old := a.Data()
	if !sameStructure(old, data) || supplementaryChanged(old, data) {
		s.log().Debug("structure changed, reloading", "surface", target.SurfaceID())
		a.SetData(data)
		target.ReloadData()
		return
	}

	a.SetData(data)

	var changed []component.IndexPath
	for sec := range data {
		for item, next := range data[sec].Cells {
			at := component.IndexPath{Section: sec, Item: item}
			if old[sec].Cells[item].Component.ShouldContentUpdate(next.Component) {
				changed = append(changed, at)
				continue
			}
			if !s.AlwaysRenderVisibleComponents {
				continue
			}
			if cell := target.VisibleCell(at); cell != nil {
				cell.Render(next.Component)
			}
		}
	}
	if len(changed) == 0 {
		return
	}
	s.log().Debug("reloading changed items", "surface", target.SurfaceID(), "items", len(changed))
	target.ReloadItems(changed)
}

func (s *Staged) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func sameStructure(old, next []section.Section) bool {
	if len(old) != len(next) {
		return false
	}
	for i := range old {
		if !sameID(old[i].ID, next[i].ID) ||
			!sameOptionalNode(old[i].Header, next[i].Header) ||
			!sameOptionalNode(old[i].Footer, next[i].Footer) ||
			len(old[i].Cells) != len(next[i].Cells) {
			return false
		}
		for j := range old[i].Cells {
			if !sameID(old[i].Cells[j].ID, next[i].Cells[j].ID) {
				return false
			}
		}
	}
	return true
}

// supplementaryChanged reports whether any header or footer of structurally
// equal data needs new content.
func supplementaryChanged(old, next []section.Section) bool {
	for i := range old {
		if old[i].Header != nil && old[i].Header.Component.ShouldContentUpdate(next[i].Header.Component) {
			return true
		}
		if old[i].Footer != nil && old[i].Footer.Component.ShouldContentUpdate(next[i].Footer.Component) {
			return true
		}
	}
	return false
}

func sameOptionalNode(a, b *section.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sameID(a.ID, b.ID)
}

func sameID(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
