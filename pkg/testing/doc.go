// Package testing provides fakes for exercising adapters, renderers and
// updaters without a real UI surface.
//
// [FakeSurface] is a complete surface.Target backed by a surface.Pool. It
// shows every item at once, records every registration and dequeue it
// receives, and keeps its own selection state:
//
//	func TestSomething(t *testing.T) {
//	    s := carbontest.NewFakeSurface()
//	    a := adapter.New(adapter.WithData(sections...))
//	    s.Bind(a, a)
//	    s.ReloadData()
//
//	    cell := s.VisibleCell(component.IndexPath{Section: 0, Item: 0})
//	    ...
//	}
//
// [CaptureErrors] installs an error handler for the duration of a test and
// returns everything reported through pkg/errors.
package testing
