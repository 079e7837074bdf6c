package surface

import (
	"fmt"

	"github.com/go-drift/carbon/pkg/errors"
)

// Pool is an in-memory recycling pool with the contract of a platform
// reuse queue: an identifier must be registered before it is dequeued, and
// a registered identifier always yields a view.
//
// Registering an identifier again replaces its binding and drops queued
// views of any other class, so the first dequeue after a re-registration
// yields the new class. Views enqueued under a binding that changed while
// they were on screen are dropped as well.
type Pool struct {
	surface       ID
	cells         map[string]*reuseQueue
	supplementary map[supplementaryKey]*reuseQueue
	created       int
}

type supplementaryKey struct {
	kind       string
	identifier string
}

type reuseQueue struct {
	registration Registration
	free         []ReusableView
}

// NewPool returns an empty pool owned by the given surface.
func NewPool(surface ID) *Pool {
	return &Pool{
		surface:       surface,
		cells:         make(map[string]*reuseQueue),
		supplementary: make(map[supplementaryKey]*reuseQueue),
	}
}

// Register binds identifier to reg.
func (p *Pool) Register(identifier string, reg Registration) {
	p.cells[identifier] = rebind(p.cells[identifier], reg)
}

// RegisterSupplementary binds (kind, identifier) to reg.
func (p *Pool) RegisterSupplementary(kind, identifier string, reg Registration) {
	key := supplementaryKey{kind: kind, identifier: identifier}
	p.supplementary[key] = rebind(p.supplementary[key], reg)
}

// Dequeue returns a queued view for identifier or creates one. It returns
// nil and reports a platform error when identifier is not registered.
func (p *Pool) Dequeue(identifier string) ReusableView {
	q, ok := p.cells[identifier]
	if !ok {
		p.reportUnregistered("surface.Pool.Dequeue", identifier)
		return nil
	}
	return p.take(q)
}

// DequeueSupplementary is Dequeue for supplementary views.
func (p *Pool) DequeueSupplementary(kind, identifier string) ReusableView {
	q, ok := p.supplementary[supplementaryKey{kind: kind, identifier: identifier}]
	if !ok {
		p.reportUnregistered("surface.Pool.DequeueSupplementary", kind+"/"+identifier)
		return nil
	}
	return p.take(q)
}

// Enqueue returns v to the queue of identifier.
func (p *Pool) Enqueue(identifier string, v ReusableView) {
	give(p.cells[identifier], v)
}

// EnqueueSupplementary returns v to the queue of (kind, identifier).
func (p *Pool) EnqueueSupplementary(kind, identifier string, v ReusableView) {
	give(p.supplementary[supplementaryKey{kind: kind, identifier: identifier}], v)
}

// Registration returns the current binding of identifier.
func (p *Pool) Registration(identifier string) (Registration, bool) {
	q, ok := p.cells[identifier]
	if !ok {
		return Registration{}, false
	}
	return q.registration, true
}

// Queued returns the number of idle views queued for identifier.
func (p *Pool) Queued(identifier string) int {
	if q, ok := p.cells[identifier]; ok {
		return len(q.free)
	}
	return 0
}

// Created returns how many views the pool instantiated.
func (p *Pool) Created() int {
	return p.created
}

func (p *Pool) take(q *reuseQueue) ReusableView {
	if n := len(q.free); n > 0 {
		v := q.free[n-1]
		q.free[n-1] = nil
		q.free = q.free[:n-1]
		v.PrepareForReuse()
		return v
	}
	p.created++
	return q.registration.NewInstance()
}

func (p *Pool) reportUnregistered(op, identifier string) {
	errors.Report(&errors.CarbonError{
		Op:      op,
		Kind:    errors.KindPlatform,
		Surface: uint64(p.surface),
		Err:     fmt.Errorf("%w: %q", errors.ErrNotRegistered, identifier),
	})
}

func rebind(q *reuseQueue, reg Registration) *reuseQueue {
	if q == nil {
		return &reuseQueue{registration: reg}
	}
	q.registration = reg
	kept := q.free[:0]
	for _, v := range q.free {
		if reg.Class.IsMember(v) {
			kept = append(kept, v)
		}
	}
	clear(q.free[len(kept):])
	q.free = kept
	return q
}

func give(q *reuseQueue, v ReusableView) {
	if q == nil || v == nil || !q.registration.Class.IsMember(v) {
		return
	}
	q.free = append(q.free, v)
}
