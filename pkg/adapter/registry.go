package adapter

import (
	"slices"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/surface"
)

// Registry records, per surface instance, which reuse identifiers were
// registered with that surface's pool. A surface is asked to dequeue an
// identifier only after the registry saw it registered there.
//
// Records are dropped by Forget, which is wired automatically to surfaces
// implementing surface.Disposable. A Registry is confined to the goroutine
// owning its surfaces.
type Registry struct {
	records map[surface.ID]*record
}

type record struct {
	cells map[string]struct{}
	kinds map[string]map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[surface.ID]*record)}
}

func (r *Registry) lookup(s surface.Surface) *record {
	if r.records == nil {
		return nil
	}
	return r.records[s.SurfaceID()]
}

// entry returns the record of s, creating it on first use.
func (r *Registry) entry(s surface.Surface) *record {
	if r.records == nil {
		r.records = make(map[surface.ID]*record)
	}
	id := s.SurfaceID()
	if rec, ok := r.records[id]; ok {
		return rec
	}
	rec := &record{
		cells: make(map[string]struct{}),
		kinds: make(map[string]map[string]struct{}),
	}
	r.records[id] = rec
	trackedSurfaces.Inc()
	if d, ok := s.(surface.Disposable); ok {
		d.OnDispose(func() { r.Forget(id) })
	}
	return rec
}

// IsCellRegistered reports whether identifier was registered on s.
func (r *Registry) IsCellRegistered(s surface.Surface, identifier string) bool {
	rec := r.lookup(s)
	if rec == nil {
		return false
	}
	_, ok := rec.cells[identifier]
	return ok
}

// IsSupplementaryRegistered reports whether (kind, identifier) was registered on s.
func (r *Registry) IsSupplementaryRegistered(s surface.Surface, kind, identifier string) bool {
	rec := r.lookup(s)
	if rec == nil {
		return false
	}
	_, ok := rec.kinds[kind][identifier]
	return ok
}

// RegisterCell registers identifier with the pool of s and records it.
func (r *Registry) RegisterCell(s surface.Surface, identifier string, reg surface.Registration) {
	s.Register(identifier, reg)
	r.entry(s).cells[identifier] = struct{}{}
	registrationsTotal.WithLabelValues(scopeCell).Inc()
}

// RegisterSupplementary registers (kind, identifier) with the pool of s and records it.
func (r *Registry) RegisterSupplementary(s surface.Surface, kind, identifier string, reg surface.Registration) {
	s.RegisterSupplementary(kind, identifier, reg)
	rec := r.entry(s)
	ids, ok := rec.kinds[kind]
	if !ok {
		ids = make(map[string]struct{})
		rec.kinds[kind] = ids
	}
	ids[identifier] = struct{}{}
	registrationsTotal.WithLabelValues(scopeSupplementary).Inc()
}

// DequeueCell asks s for a view under identifier. It returns nil without
// touching the pool when identifier is not registered on s.
func (r *Registry) DequeueCell(s surface.Surface, identifier string, at component.IndexPath) surface.ReusableView {
	if !r.IsCellRegistered(s, identifier) {
		dequeuesTotal.WithLabelValues(scopeCell, resultUnregistered).Inc()
		return nil
	}
	dequeuesTotal.WithLabelValues(scopeCell, resultDequeued).Inc()
	return s.DequeueReusableCell(identifier, at)
}

// DequeueSupplementary is DequeueCell for (kind, identifier).
func (r *Registry) DequeueSupplementary(s surface.Surface, kind, identifier string, at component.IndexPath) surface.ReusableView {
	if !r.IsSupplementaryRegistered(s, kind, identifier) {
		dequeuesTotal.WithLabelValues(scopeSupplementary, resultUnregistered).Inc()
		return nil
	}
	dequeuesTotal.WithLabelValues(scopeSupplementary, resultDequeued).Inc()
	return s.DequeueReusableSupplementary(kind, identifier, at)
}

// SupplementaryKinds returns the sorted kinds registered on s.
func (r *Registry) SupplementaryKinds(s surface.Surface) []string {
	rec := r.lookup(s)
	if rec == nil {
		return nil
	}
	kinds := make([]string, 0, len(rec.kinds))
	for kind := range rec.kinds {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Forget drops the record of the surface with the given id.
func (r *Registry) Forget(id surface.ID) {
	if _, ok := r.records[id]; !ok {
		return
	}
	delete(r.records, id)
	trackedSurfaces.Dec()
}

// Tracks reports whether a record exists for the surface with the given id.
func (r *Registry) Tracks(id surface.ID) bool {
	_, ok := r.records[id]
	return ok
}
