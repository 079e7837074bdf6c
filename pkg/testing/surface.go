package testing

import (
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/surface"
)

// RegisterCall records one registration received by a FakeSurface.
type RegisterCall struct {
	Kind       string // empty for cells
	Identifier string
	Class      surface.Class
}

// DequeueCall records one dequeue received by a FakeSurface.
type DequeueCall struct {
	Kind       string // empty for cells
	Identifier string
	At         component.IndexPath
	View       surface.ReusableView
}

// Event is a call from FakeSurface into the pool, in order.
type Event struct {
	Op         string // "register" or "dequeue"
	Kind       string
	Identifier string
}

// FakeSurface is an unbounded in-memory surface.
type FakeSurface struct {
	id   surface.ID
	pool *surface.Pool

	dataSource surface.DataSource
	delegate   surface.Delegate

	allowsSelection bool
	selected        map[component.IndexPath]bool
	bounds          geometry.Rect
	insets          geometry.EdgeInsets
	axis            surface.Axis
	itemSize        geometry.Size
	headerSize      geometry.Size
	footerSize      geometry.Size

	visible  map[component.IndexPath]surface.ReusableView
	headers  map[int]surface.ReusableView
	footers  map[int]surface.ReusableView
	disposed []func()

	Registrations []RegisterCall
	Dequeues      []DequeueCall
	Events        []Event
	Reloads       int
	ReloadedItems [][]component.IndexPath
}

// Option configures a FakeSurface.
type Option func(*FakeSurface)

// WithSelection sets whether the surface allows selection. Default true.
func WithSelection(allowed bool) Option {
	return func(s *FakeSurface) { s.allowsSelection = allowed }
}

// WithBounds sets the surface bounds. Default 320x480.
func WithBounds(r geometry.Rect) Option {
	return func(s *FakeSurface) { s.bounds = r }
}

// WithFlowLayout sets the flow layout parameters. The default is a vertical
// flow of 320x44 items without insets.
func WithFlowLayout(axis surface.Axis, insets geometry.EdgeInsets, itemSize geometry.Size) Option {
	return func(s *FakeSurface) {
		s.axis = axis
		s.insets = insets
		s.itemSize = itemSize
	}
}

// WithSupplementarySizes sets the default header and footer sizes. A zero
// size hides the supplementary view.
func WithSupplementarySizes(header, footer geometry.Size) Option {
	return func(s *FakeSurface) {
		s.headerSize = header
		s.footerSize = footer
	}
}

// NewFakeSurface returns a surface with a fresh id and an empty pool.
func NewFakeSurface(opts ...Option) *FakeSurface {
	id := surface.NextID()
	s := &FakeSurface{
		id:              id,
		pool:            surface.NewPool(id),
		allowsSelection: true,
		selected:        make(map[component.IndexPath]bool),
		bounds:          geometry.RectFromLTWH(0, 0, 320, 480),
		itemSize:        geometry.Size{Width: 320, Height: 44},
		headerSize:      geometry.Size{Width: 320, Height: 28},
		footerSize:      geometry.Size{Width: 320, Height: 28},
		visible:         make(map[component.IndexPath]surface.ReusableView),
		headers:         make(map[int]surface.ReusableView),
		footers:         make(map[int]surface.ReusableView),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ surface.Target     = (*FakeSurface)(nil)
	_ surface.Layout     = (*FakeSurface)(nil)
	_ surface.Disposable = (*FakeSurface)(nil)
)

// Pool exposes the backing pool.
func (s *FakeSurface) Pool() *surface.Pool { return s.pool }

// SurfaceID implements surface.Surface.
func (s *FakeSurface) SurfaceID() surface.ID { return s.id }

// Register implements surface.Surface.
func (s *FakeSurface) Register(identifier string, reg surface.Registration) {
	s.Registrations = append(s.Registrations, RegisterCall{Identifier: identifier, Class: reg.Class})
	s.Events = append(s.Events, Event{Op: "register", Identifier: identifier})
	s.pool.Register(identifier, reg)
}

// RegisterSupplementary implements surface.Surface.
func (s *FakeSurface) RegisterSupplementary(kind, identifier string, reg surface.Registration) {
	s.Registrations = append(s.Registrations, RegisterCall{Kind: kind, Identifier: identifier, Class: reg.Class})
	s.Events = append(s.Events, Event{Op: "register", Kind: kind, Identifier: identifier})
	s.pool.RegisterSupplementary(kind, identifier, reg)
}

// DequeueReusableCell implements surface.Surface.
func (s *FakeSurface) DequeueReusableCell(identifier string, at component.IndexPath) surface.ReusableView {
	v := s.pool.Dequeue(identifier)
	s.Dequeues = append(s.Dequeues, DequeueCall{Identifier: identifier, At: at, View: v})
	s.Events = append(s.Events, Event{Op: "dequeue", Identifier: identifier})
	return v
}

// DequeueReusableSupplementary implements surface.Surface.
func (s *FakeSurface) DequeueReusableSupplementary(kind, identifier string, at component.IndexPath) surface.ReusableView {
	v := s.pool.DequeueSupplementary(kind, identifier)
	s.Dequeues = append(s.Dequeues, DequeueCall{Kind: kind, Identifier: identifier, At: at, View: v})
	s.Events = append(s.Events, Event{Op: "dequeue", Kind: kind, Identifier: identifier})
	return v
}

// AllowsSelection implements surface.Surface.
func (s *FakeSurface) AllowsSelection() bool { return s.allowsSelection }

// SelectItem implements surface.Surface.
func (s *FakeSurface) SelectItem(at component.IndexPath) {
	s.selected[at] = true
	if v := s.visible[at]; v != nil {
		v.SetSelected(true)
	}
}

// DeselectItem implements surface.Surface.
func (s *FakeSurface) DeselectItem(at component.IndexPath) {
	delete(s.selected, at)
	if v := s.visible[at]; v != nil {
		v.SetSelected(false)
	}
}

// IsItemSelected implements surface.Surface.
func (s *FakeSurface) IsItemSelected(at component.IndexPath) bool { return s.selected[at] }

// Bounds implements surface.Surface.
func (s *FakeSurface) Bounds() geometry.Rect { return s.bounds }

// ScrollAxis implements surface.Layout.
func (s *FakeSurface) ScrollAxis() surface.Axis { return s.axis }

// ContentInset implements surface.Layout.
func (s *FakeSurface) ContentInset() geometry.EdgeInsets { return s.insets }

// ItemSize implements surface.Layout.
func (s *FakeSurface) ItemSize() geometry.Size { return s.itemSize }

// HeaderReferenceSize implements surface.Layout.
func (s *FakeSurface) HeaderReferenceSize() geometry.Size { return s.headerSize }

// FooterReferenceSize implements surface.Layout.
func (s *FakeSurface) FooterReferenceSize() geometry.Size { return s.footerSize }

// Bind implements surface.Target.
func (s *FakeSurface) Bind(ds surface.DataSource, d surface.Delegate) {
	s.dataSource = ds
	s.delegate = d
}

// ReloadData ends display of every view and shows every item, header and
// footer again.
func (s *FakeSurface) ReloadData() {
	s.Reloads++
	s.endAll()
	if s.dataSource == nil {
		return
	}
	for sec := range s.dataSource.NumberOfSections(s) {
		s.showSupplementary(surface.ElementKindSectionHeader, sec, s.headers)
		for item := range s.dataSource.NumberOfItems(s, sec) {
			s.Display(component.IndexPath{Section: sec, Item: item})
		}
		s.showSupplementary(surface.ElementKindSectionFooter, sec, s.footers)
	}
}

// ReloadItems re-requests the cells at paths.
func (s *FakeSurface) ReloadItems(paths []component.IndexPath) {
	s.ReloadedItems = append(s.ReloadedItems, paths)
	for _, at := range paths {
		s.EndDisplay(at)
		s.Display(at)
	}
}

// VisibleCell implements surface.Target.
func (s *FakeSurface) VisibleCell(at component.IndexPath) surface.ReusableView {
	return s.visible[at]
}

// Header returns the displayed header of a section, or nil.
func (s *FakeSurface) Header(sec int) surface.ReusableView { return s.headers[sec] }

// Footer returns the displayed footer of a section, or nil.
func (s *FakeSurface) Footer(sec int) surface.ReusableView { return s.footers[sec] }

// Display asks the data source for the cell at path and shows it.
func (s *FakeSurface) Display(at component.IndexPath) surface.ReusableView {
	v := s.dataSource.CellForItem(s, at)
	v.SetSelected(s.selected[at])
	s.visible[at] = v
	if s.delegate != nil {
		s.delegate.WillDisplayCell(s, v, at)
	}
	return v
}

// EndDisplay removes the cell at path from screen and returns it to the pool.
func (s *FakeSurface) EndDisplay(at component.IndexPath) {
	v, ok := s.visible[at]
	if !ok {
		return
	}
	delete(s.visible, at)
	if s.delegate != nil {
		s.delegate.DidEndDisplayingCell(s, v, at)
	}
	s.pool.Enqueue(v.RenderedComponent().ReuseIdentifier(), v)
}

// Select runs the delegate's selection flow for path, as a tap would.
func (s *FakeSurface) Select(at component.IndexPath) bool {
	if s.delegate == nil || !s.allowsSelection || !s.delegate.ShouldSelectItem(s, at) {
		return false
	}
	s.SelectItem(at)
	s.delegate.DidSelectItem(s, at)
	return true
}

// Deselect runs the delegate's deselection flow for path.
func (s *FakeSurface) Deselect(at component.IndexPath) {
	s.DeselectItem(at)
	if s.delegate != nil {
		s.delegate.DidDeselectItem(s, at)
	}
}

// OnDispose implements surface.Disposable.
func (s *FakeSurface) OnDispose(fn func()) {
	s.disposed = append(s.disposed, fn)
}

// Dispose runs the dispose listeners.
func (s *FakeSurface) Dispose() {
	fns := s.disposed
	s.disposed = nil
	for _, fn := range fns {
		fn()
	}
}

// ResetRecords clears recorded calls.
func (s *FakeSurface) ResetRecords() {
	s.Registrations = nil
	s.Dequeues = nil
	s.Events = nil
	s.ReloadedItems = nil
	s.Reloads = 0
}

func (s *FakeSurface) showSupplementary(kind string, sec int, into map[int]surface.ReusableView) {
	layout, ok := s.delegate.(surface.LayoutDelegate)
	if !ok {
		return
	}
	var size geometry.Size
	if kind == surface.ElementKindSectionHeader {
		size = layout.ReferenceSizeForHeader(s, sec)
	} else {
		size = layout.ReferenceSizeForFooter(s, sec)
	}
	if size.IsZero() {
		return
	}
	at := component.IndexPath{Section: sec}
	v := s.dataSource.SupplementaryView(s, kind, at)
	into[sec] = v
	s.delegate.WillDisplaySupplementary(s, v, kind, at)
}

func (s *FakeSurface) endAll() {
	for at := range s.visible {
		s.EndDisplay(at)
	}
	for sec, v := range s.headers {
		s.endSupplementary(surface.ElementKindSectionHeader, sec, v)
	}
	for sec, v := range s.footers {
		s.endSupplementary(surface.ElementKindSectionFooter, sec, v)
	}
	clear(s.headers)
	clear(s.footers)
}

func (s *FakeSurface) endSupplementary(kind string, sec int, v surface.ReusableView) {
	if s.delegate != nil {
		s.delegate.DidEndDisplayingSupplementary(s, v, kind, component.IndexPath{Section: sec})
	}
	s.pool.EnqueueSupplementary(kind, v.RenderedComponent().ReuseIdentifier(), v)
}
