package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/errors"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
	carbontest "github.com/go-drift/carbon/pkg/testing"
)

type events struct {
	displayed   int
	ended       int
	highlighted []component.IndexPath
	selected    []component.IndexPath
	deselected  []component.IndexPath
}

type labelContent struct {
	text     string
	selected bool
}

func (c *labelContent) SetSelected(selected bool) { c.selected = selected }

type label struct {
	Text     string
	Selected bool
	Height   float64
	Locked   bool
	events   *events
}

func (label) RenderContent() *labelContent   { return &labelContent{} }
func (l label) Render(content *labelContent) { content.text = l.Text }
func (l label) IsSelected() bool             { return l.Selected }

func (l label) ReferenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	if l.Height == 0 {
		return geometry.Size{}, false
	}
	return geometry.Size{Width: bounds.Width(), Height: l.Height}, true
}

func (l label) ShouldSelect(component.IndexPath) bool    { return !l.Locked }
func (l label) ShouldHighlight(component.IndexPath) bool { return !l.Locked }

func (l label) DidHighlight(at component.IndexPath) {
	if l.events != nil {
		l.events.highlighted = append(l.events.highlighted, at)
	}
}

func (l label) DidUnhighlight(component.IndexPath) {}

func (l label) DidSelect(at component.IndexPath) {
	if l.events != nil {
		l.events.selected = append(l.events.selected, at)
	}
}

func (l label) DidDeselect(at component.IndexPath) {
	if l.events != nil {
		l.events.deselected = append(l.events.deselected, at)
	}
}

func (l label) ContentWillDisplay(*labelContent) {
	if l.events != nil {
		l.events.displayed++
	}
}

func (l label) ContentDidEndDisplaying(*labelContent) {
	if l.events != nil {
		l.events.ended++
	}
}

type badgeContent struct{ count int }

type badge struct{ Count int }

func (badge) RenderContent() *badgeContent   { return &badgeContent{} }
func (b badge) Render(content *badgeContent) { content.count = b.Count }
func (badge) ReuseIdentifier() string        { return "badge" }

func labelNode(id any, l label) section.Node {
	return section.NewNode(id, component.Erase[*labelContent](l))
}

func badgeNode(id any, count int) section.Node {
	return section.NewNode(id, component.Erase[*badgeContent](badge{Count: count}))
}

type plainCell struct{ surface.Host }
type wideCell struct{ surface.Host }

var (
	plainCellClass = surface.ClassOf(func() *plainCell { return &plainCell{} })
	wideCellClass  = surface.ClassOf(func() *wideCell { return &wideCell{} })
)

func bind(t *testing.T, a *adapter.Adapter, opts ...carbontest.Option) *carbontest.FakeSurface {
	t.Helper()
	s := carbontest.NewFakeSurface(opts...)
	s.Bind(a, a)
	s.ReloadData()
	return s
}

func TestRegistersOnceBeforeFirstDequeue(t *testing.T) {
	a := adapter.New(adapter.WithData(
		section.New(0, labelNode(1, label{Text: "a"}), labelNode(2, label{Text: "b"}), badgeNode(3, 1)),
	))
	s := bind(t, a)

	registered := map[string]int{}
	for i, ev := range s.Events {
		if ev.Op == "register" {
			registered[ev.Identifier]++
			continue
		}
		require.Positive(t, registered[ev.Identifier], "dequeue of %q at event %d before registration", ev.Identifier, i)
	}
	assert.Equal(t, map[string]int{"adapter_test.label": 1, "badge": 1}, registered)

	s.ResetRecords()
	s.ReloadData()
	assert.Empty(t, s.Registrations)
	assert.Len(t, s.Dequeues, 3)
}

func TestStructuralProjection(t *testing.T) {
	a := adapter.New(adapter.WithData(
		section.New("s0", labelNode("c0", label{Text: "c0"}), labelNode("c1", label{Text: "c1"}), labelNode("c2", label{Text: "c2"})).
			WithHeader(labelNode("H0", label{Text: "H0"})),
		section.New("s1").WithFooter(labelNode("F1", label{Text: "F1"})),
	))
	s := bind(t, a)

	require.Equal(t, 2, a.NumberOfSections(s))
	assert.Equal(t, 3, a.NumberOfItems(s, 0))
	assert.Equal(t, 0, a.NumberOfItems(s, 1))

	assert.NotNil(t, s.Header(0))
	assert.Nil(t, s.Footer(0))
	assert.Nil(t, s.Header(1))
	assert.NotNil(t, s.Footer(1))

	header := s.Header(0).RenderedContent().(*labelContent)
	assert.Equal(t, "H0", header.text)
	footer := s.Footer(1).RenderedContent().(*labelContent)
	assert.Equal(t, "F1", footer.text)
	assert.Equal(t, []string{surface.ElementKindSectionFooter, surface.ElementKindSectionHeader}, a.RegisteredSupplementaryKinds(s))

	s.CaptureSnapshot().MatchesFile(t, "testdata/structural_projection.json")
}

func TestDataReturnsCopy(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New("s0", labelNode("c0", label{Text: "c0"}))))

	data := a.Data()
	data[0] = section.New("other")
	assert.Equal(t, "s0", a.Data()[0].ID)
	assert.Equal(t, 1, a.NumberOfItems(nil, 0))
}

func TestCellRendersNodeComponent(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{Text: "hello"}))))
	s := bind(t, a)

	cell := s.VisibleCell(component.IndexPath{})
	require.IsType(t, &surface.ComponentCell{}, cell)
	assert.Equal(t, "hello", cell.RenderedContent().(*labelContent).text)
}

func TestStaticClass(t *testing.T) {
	a := adapter.New(
		adapter.WithData(section.New(0, labelNode(1, label{Text: "a"}))),
		adapter.WithCellRegistrationBehavior(adapter.Static(plainCellClass)),
	)
	s := bind(t, a)

	assert.IsType(t, &plainCell{}, s.VisibleCell(component.IndexPath{}))
}

func TestDynamicReRegistrationYieldsNewClass(t *testing.T) {
	class := plainCellClass
	a := adapter.New(
		adapter.WithData(section.New(0, labelNode(1, label{Text: "a"}), labelNode(2, label{Text: "b"}))),
		adapter.WithCellRegistrationBehavior(adapter.Dynamic()),
		adapter.WithCellRegistration(func(surface.Surface, component.IndexPath, section.Node) surface.Registration {
			return surface.Registration{Class: class}
		}),
	)
	s := bind(t, a)
	assert.IsType(t, &plainCell{}, s.VisibleCell(component.IndexPath{}))
	require.Len(t, s.Registrations, 1)

	class = wideCellClass
	s.ReloadData()

	assert.IsType(t, &wideCell{}, s.VisibleCell(component.IndexPath{Item: 0}))
	assert.IsType(t, &wideCell{}, s.VisibleCell(component.IndexPath{Item: 1}))
	require.Len(t, s.Registrations, 2)
	assert.True(t, wideCellClass.Equal(s.Registrations[1].Class))
	assert.Zero(t, s.Pool().Queued("adapter_test.label"))
}

func TestDynamicWithoutResolverPanics(t *testing.T) {
	h := carbontest.CaptureErrors(t)

	assert.Panics(t, func() {
		adapter.New(adapter.WithCellRegistrationBehavior(adapter.Dynamic()))
	})
	reported := h.OfKind(errors.KindConfiguration)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], errors.ErrMissingResolver)
}

func TestSelectionReconciliation(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0,
		labelNode(1, label{Text: "a", Selected: true}),
		labelNode(2, label{Text: "b"}),
	)))
	s := bind(t, a)

	first, second := component.IndexPath{Item: 0}, component.IndexPath{Item: 1}
	assert.True(t, s.IsItemSelected(first))
	assert.True(t, s.VisibleCell(first).IsSelected())
	assert.False(t, s.IsItemSelected(second))

	s.SelectItem(second)
	a.SetData([]section.Section{section.New(0,
		labelNode(1, label{Text: "a"}),
		labelNode(2, label{Text: "b"}),
	)})
	s.ReloadItems([]component.IndexPath{first, second})

	assert.False(t, s.IsItemSelected(first))
	assert.False(t, s.IsItemSelected(second))
}

func TestSelectionIgnoredWhenSurfaceDisallows(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{Selected: true}))))
	s := bind(t, a, carbontest.WithSelection(false))

	assert.False(t, s.IsItemSelected(component.IndexPath{}))
}

func TestUnselectableComponentKeepsSurfaceSelection(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, badgeNode(1, 3))))
	s := carbontest.NewFakeSurface()
	s.Bind(a, a)
	s.SelectItem(component.IndexPath{})
	s.ReloadData()

	assert.True(t, s.IsItemSelected(component.IndexPath{}))
}

func TestUnhandledSupplementaryKind(t *testing.T) {
	h := carbontest.CaptureErrors(t)
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{}))))
	s := bind(t, a)

	var view surface.ReusableView
	require.NotPanics(t, func() {
		view = a.SupplementaryView(s, "ribbon", component.IndexPath{})
	})
	assert.IsType(t, &surface.EmptyView{}, view)

	reported := h.OfKind(errors.KindUnhandledKind)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], errors.ErrUnsupportedKind)
	assert.Equal(t, uint64(s.SurfaceID()), reported[0].Surface)
}

func TestMissingHeaderIsUnhandled(t *testing.T) {
	h := carbontest.CaptureErrors(t)
	a := adapter.New(adapter.WithData(section.New(0)))
	s := bind(t, a)

	view := a.SupplementaryView(s, surface.ElementKindSectionHeader, component.IndexPath{})
	assert.IsType(t, &surface.EmptyView{}, view)
	assert.Len(t, h.OfKind(errors.KindUnhandledKind), 1)
}

func TestCustomSupplementaryNode(t *testing.T) {
	a := adapter.New(
		adapter.WithData(section.New(0, labelNode(1, label{})).WithHeader(labelNode("h", label{Text: "head"}))),
		adapter.WithSupplementaryNode(func(kind string, s surface.Surface, at component.IndexPath) (section.Node, bool) {
			if kind == "ribbon" {
				return badgeNode("r", 9), true
			}
			return section.Node{}, false
		}),
		adapter.WithSupplementaryRegistration(func(kind string, _ surface.Surface, _ component.IndexPath, _ section.Node) surface.Registration {
			return surface.Registration{Class: wideCellClass}
		}),
	)
	s := carbontest.NewFakeSurface()
	s.Bind(a, a)
	h := carbontest.CaptureErrors(t)

	view := a.SupplementaryView(s, "ribbon", component.IndexPath{})
	require.IsType(t, &wideCell{}, view)
	assert.Equal(t, 9, view.RenderedContent().(*badgeContent).count)
	assert.Equal(t, []string{"ribbon"}, a.RegisteredSupplementaryKinds(s))
	require.Len(t, s.Registrations, 1)
	assert.Equal(t, "ribbon", s.Registrations[0].Kind)
	assert.Equal(t, "badge", s.Registrations[0].Identifier)
	assert.True(t, wideCellClass.Equal(s.Registrations[0].Class))

	// The override replaces header resolution entirely.
	assert.IsType(t, &surface.EmptyView{}, a.SupplementaryView(s, surface.ElementKindSectionHeader, component.IndexPath{}))
	assert.Len(t, h.Errors(), 1)
}

func TestEventForwarding(t *testing.T) {
	ev := &events{}
	var contexts, deselections []adapter.EventContext
	a := adapter.New(
		adapter.WithData(section.New(0,
			labelNode("a", label{Text: "a", events: ev}),
			labelNode("b", label{Text: "b", Locked: true, events: ev}),
		)),
		adapter.WithSelectionHandler(func(ctx adapter.EventContext) { contexts = append(contexts, ctx) }),
		adapter.WithDeselectionHandler(func(ctx adapter.EventContext) { deselections = append(deselections, ctx) }),
	)
	s := bind(t, a)
	first, second := component.IndexPath{Item: 0}, component.IndexPath{Item: 1}

	assert.Equal(t, 2, ev.displayed)
	s.EndDisplay(first)
	assert.Equal(t, 1, ev.ended)

	assert.True(t, a.ShouldHighlightItem(s, first))
	assert.False(t, a.ShouldHighlightItem(s, second))
	a.DidHighlightItem(s, first)
	assert.Equal(t, []component.IndexPath{first}, ev.highlighted)

	assert.False(t, s.Select(second))
	assert.True(t, s.Select(first))
	assert.Equal(t, []component.IndexPath{first}, ev.selected)
	require.Len(t, contexts, 1)
	assert.Equal(t, "a", contexts[0].Node.ID)
	assert.Equal(t, first, contexts[0].IndexPath)
	assert.Equal(t, s.SurfaceID(), contexts[0].Surface.SurfaceID())

	s.Deselect(first)
	assert.Equal(t, []component.IndexPath{first}, ev.deselected)
	require.Len(t, deselections, 1)
	assert.Equal(t, "a", deselections[0].Node.ID)
}

func TestFlowSizing(t *testing.T) {
	a := adapter.New(adapter.WithData(
		section.New(0, labelNode(1, label{Height: 60}), labelNode(2, label{})).
			WithHeader(labelNode("h", label{Height: 30})).
			WithFooter(labelNode("f", label{})),
		section.New(1),
	))
	s := carbontest.NewFakeSurface(
		carbontest.WithBounds(geometry.RectFromLTWH(0, 0, 320, 480)),
		carbontest.WithFlowLayout(surface.AxisVertical, geometry.EdgeInsetsAll(10), geometry.Size{Width: 100, Height: 44}),
		carbontest.WithSupplementarySizes(geometry.Size{Width: 320, Height: 20}, geometry.Size{Width: 320, Height: 16}),
	)

	assert.Equal(t, geometry.Size{Width: 300, Height: 60}, a.SizeForItem(s, component.IndexPath{Item: 0}))
	assert.Equal(t, geometry.Size{Width: 100, Height: 44}, a.SizeForItem(s, component.IndexPath{Item: 1}))
	assert.Equal(t, geometry.Size{Width: 320, Height: 30}, a.ReferenceSizeForHeader(s, 0))
	assert.Equal(t, geometry.Size{Width: 320, Height: 16}, a.ReferenceSizeForFooter(s, 0))
	assert.Equal(t, geometry.Size{}, a.ReferenceSizeForHeader(s, 1))
	assert.Equal(t, geometry.Size{}, a.ReferenceSizeForFooter(s, 1))
}

func TestFlowSizingHorizontal(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{Height: 60}))))
	s := carbontest.NewFakeSurface(
		carbontest.WithBounds(geometry.RectFromLTWH(0, 0, 320, 480)),
		carbontest.WithFlowLayout(surface.AxisHorizontal, geometry.EdgeInsetsAll(10), geometry.Size{}),
	)

	assert.Equal(t, geometry.Size{Width: 320, Height: 60}, a.SizeForItem(s, component.IndexPath{}))
}

type brokenSurface struct {
	*carbontest.FakeSurface
}

func (brokenSurface) DequeueReusableCell(string, component.IndexPath) surface.ReusableView {
	return nil
}

func TestBrokenPoolContractIsReported(t *testing.T) {
	h := carbontest.CaptureErrors(t)
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{Text: "x"}))))
	s := brokenSurface{carbontest.NewFakeSurface()}

	var cell surface.ReusableView
	require.NotPanics(t, func() { cell = a.CellForItem(s, component.IndexPath{}) })
	assert.IsType(t, &surface.EmptyView{}, cell)
	assert.Len(t, h.OfKind(errors.KindRegistry), 1)
}

func TestRegistryForgetsDisposedSurface(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{}))))
	s := bind(t, a)
	require.True(t, a.Registry().Tracks(s.SurfaceID()))
	assert.True(t, a.Registry().IsCellRegistered(s, "adapter_test.label"))

	s.Dispose()
	assert.False(t, a.Registry().Tracks(s.SurfaceID()))
	assert.False(t, a.Registry().IsCellRegistered(s, "adapter_test.label"))
}

func TestDetach(t *testing.T) {
	a := adapter.New(adapter.WithData(section.New(0, labelNode(1, label{}))))
	s := bind(t, a)

	a.Detach(s)
	assert.False(t, a.Registry().Tracks(s.SurfaceID()))

	s.ResetRecords()
	s.ReloadData()
	assert.Len(t, s.Registrations, 1)
}

func TestSharedRegistryAcrossAdapters(t *testing.T) {
	registry := adapter.NewRegistry()
	first := adapter.New(adapter.WithRegistry(registry), adapter.WithData(section.New(0, labelNode(1, label{}))))
	s := bind(t, first)

	second := adapter.New(adapter.WithRegistry(registry), adapter.WithData(section.New(0, labelNode(2, label{}))))
	s.Bind(second, second)
	s.ResetRecords()
	s.ReloadData()

	assert.Empty(t, s.Registrations)
	assert.Same(t, registry, second.Registry())
}
