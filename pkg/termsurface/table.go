// Package termsurface displays sections in a terminal.
//
// A [Table] is a surface.Target laid out as a vertical list of rows: every
// section contributes its header, its cells and its footer. Rows are
// realized only while they are inside the viewport; rows scrolling out are
// handed back to the table's recycling pool. [Model] drives a Table from a
// bubbletea program.
package termsurface

import (
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/components"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/surface"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowCell
	rowFooter
)

func (k rowKind) elementKind() string {
	if k == rowHeader {
		return surface.ElementKindSectionHeader
	}
	return surface.ElementKindSectionFooter
}

type rowKey struct {
	kind rowKind
	at   component.IndexPath
}

type row struct {
	rowKey
	height int
}

// Table is a scrolling list of sections in a terminal viewport.
type Table struct {
	id   surface.ID
	pool *surface.Pool

	dataSource surface.DataSource
	delegate   surface.Delegate

	width, height int
	insets        geometry.EdgeInsets

	rows    []row
	offset  int
	cursor  int
	visible map[rowKey]surface.ReusableView

	allowsSelection   bool
	multipleSelection bool
	selected          map[component.IndexPath]bool
	highlighted       bool

	disposers []func()
	logger    *slog.Logger
}

var (
	_ surface.Target     = (*Table)(nil)
	_ surface.Layout     = (*Table)(nil)
	_ surface.Disposable = (*Table)(nil)
)

// Option configures a Table.
type Option func(*Table)

// WithSize sets the viewport size in cells. Default 80x24.
func WithSize(width, height int) Option {
	return func(t *Table) { t.width, t.height = width, height }
}

// WithInsets sets the content insets in cells.
func WithInsets(insets geometry.EdgeInsets) Option {
	return func(t *Table) { t.insets = insets }
}

// WithSelection sets whether rows can be selected and whether more than one
// can be selected at once. Default single selection.
func WithSelection(allowed, multiple bool) Option {
	return func(t *Table) {
		t.allowsSelection = allowed
		t.multipleSelection = multiple
	}
}

// WithLogger sets the logger for recycling diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// NewTable returns an empty table.
func NewTable(opts ...Option) *Table {
	id := surface.NextID()
	t := &Table{
		id:              id,
		pool:            surface.NewPool(id),
		width:           80,
		height:          24,
		cursor:          -1,
		visible:         make(map[rowKey]surface.ReusableView),
		allowsSelection: true,
		selected:        make(map[component.IndexPath]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SurfaceID implements surface.Surface.
func (t *Table) SurfaceID() surface.ID { return t.id }

// Pool returns the recycling pool of the table.
func (t *Table) Pool() *surface.Pool { return t.pool }

// Register implements surface.Surface.
func (t *Table) Register(identifier string, reg surface.Registration) {
	t.pool.Register(identifier, reg)
}

// RegisterSupplementary implements surface.Surface.
func (t *Table) RegisterSupplementary(kind, identifier string, reg surface.Registration) {
	t.pool.RegisterSupplementary(kind, identifier, reg)
}

// DequeueReusableCell implements surface.Surface.
func (t *Table) DequeueReusableCell(identifier string, _ component.IndexPath) surface.ReusableView {
	return t.pool.Dequeue(identifier)
}

// DequeueReusableSupplementary implements surface.Surface.
func (t *Table) DequeueReusableSupplementary(kind, identifier string, _ component.IndexPath) surface.ReusableView {
	return t.pool.DequeueSupplementary(kind, identifier)
}

// AllowsSelection implements surface.Surface.
func (t *Table) AllowsSelection() bool { return t.allowsSelection }

// SelectItem implements surface.Surface.
func (t *Table) SelectItem(at component.IndexPath) {
	t.selected[at] = true
	if v := t.visible[rowKey{kind: rowCell, at: at}]; v != nil {
		v.SetSelected(true)
	}
}

// DeselectItem implements surface.Surface.
func (t *Table) DeselectItem(at component.IndexPath) {
	delete(t.selected, at)
	if v := t.visible[rowKey{kind: rowCell, at: at}]; v != nil {
		v.SetSelected(false)
	}
}

// IsItemSelected implements surface.Surface.
func (t *Table) IsItemSelected(at component.IndexPath) bool { return t.selected[at] }

// SelectedItems returns the selected paths in display order.
func (t *Table) SelectedItems() []component.IndexPath {
	var out []component.IndexPath
	for _, r := range t.rows {
		if r.kind == rowCell && t.selected[r.at] {
			out = append(out, r.at)
		}
	}
	return out
}

// Bounds implements surface.Surface.
func (t *Table) Bounds() geometry.Rect {
	return geometry.RectFromLTWH(0, 0, float64(t.width), float64(t.height))
}

// ScrollAxis implements surface.Layout.
func (t *Table) ScrollAxis() surface.Axis { return surface.AxisVertical }

// ContentInset implements surface.Layout.
func (t *Table) ContentInset() geometry.EdgeInsets { return t.insets }

// ItemSize implements surface.Layout. Items default to one row.
func (t *Table) ItemSize() geometry.Size {
	return geometry.Size{Width: float64(t.contentWidth()), Height: 1}
}

// HeaderReferenceSize implements surface.Layout.
func (t *Table) HeaderReferenceSize() geometry.Size { return t.ItemSize() }

// FooterReferenceSize implements surface.Layout.
func (t *Table) FooterReferenceSize() geometry.Size { return t.ItemSize() }

// Bind implements surface.Target.
func (t *Table) Bind(ds surface.DataSource, d surface.Delegate) {
	t.dataSource = ds
	t.delegate = d
}

// ReloadData ends display of every row, drops the selection, lays out the
// data source again and realizes the rows inside the viewport. Displayed
// cells get their selection back from their components. The cursor stays on
// the same path when it still exists.
func (t *Table) ReloadData() {
	var cursorAt *component.IndexPath
	if r, ok := t.cursorRow(); ok {
		cursorAt = &r.at
	}
	for key, v := range t.visible {
		t.endDisplay(key, v)
	}
	clear(t.visible)
	clear(t.selected)
	t.layoutRows()

	t.cursor = -1
	if cursorAt != nil {
		t.cursor = t.rowIndex(rowKey{kind: rowCell, at: *cursorAt})
	}
	if t.cursor < 0 {
		t.cursor = t.nextItemRow(-1, 1)
	}
	t.offset = min(t.offset, max(len(t.rows)-1, 0))
	t.highlighted = t.cursor >= 0 && t.delegate != nil && t.delegate.ShouldHighlightItem(t, t.rows[t.cursor].at)
	t.scrollToCursor()
	t.updateVisible()
}

// ReloadItems re-requests the cells at paths. Their heights are measured
// again.
func (t *Table) ReloadItems(paths []component.IndexPath) {
	for _, at := range paths {
		key := rowKey{kind: rowCell, at: at}
		i := t.rowIndex(key)
		if i < 0 {
			continue
		}
		if v, ok := t.visible[key]; ok {
			t.endDisplay(key, v)
			delete(t.visible, key)
		}
		t.rows[i].height = t.measure(key)
	}
	t.updateVisible()
}

// VisibleCell implements surface.Target.
func (t *Table) VisibleCell(at component.IndexPath) surface.ReusableView {
	return t.visible[rowKey{kind: rowCell, at: at}]
}

// OnDispose implements surface.Disposable.
func (t *Table) OnDispose(fn func()) {
	t.disposers = append(t.disposers, fn)
}

// Dispose ends display of every row and runs the dispose listeners.
func (t *Table) Dispose() {
	for key, v := range t.visible {
		t.endDisplay(key, v)
	}
	clear(t.visible)
	fns := t.disposers
	t.disposers = nil
	for _, fn := range fns {
		fn()
	}
}

// Resize changes the viewport size and realizes the rows now inside it.
func (t *Table) Resize(width, height int) {
	t.width, t.height = max(width, 1), max(height, 1)
	if t.dataSource == nil {
		return
	}
	t.ReloadData()
}

// Cursor returns the path of the item under the cursor.
func (t *Table) Cursor() (component.IndexPath, bool) {
	r, ok := t.cursorRow()
	return r.at, ok
}

// MoveCursor moves the cursor by delta items, skipping headers and footers,
// and scrolls it into view. The delegate is told about the highlight change.
func (t *Table) MoveCursor(delta int) {
	if delta == 0 || t.cursor < 0 {
		return
	}
	dir := 1
	if delta < 0 {
		dir, delta = -1, -delta
	}
	next := t.cursor
	for range delta {
		i := t.nextItemRow(next, dir)
		if i < 0 {
			break
		}
		next = i
	}
	if next == t.cursor {
		return
	}
	t.unhighlight()
	t.cursor = next
	t.highlight()
	t.scrollToCursor()
	t.updateVisible()
}

// ToggleSelection selects the item under the cursor, or deselects it when it
// is selected. Selecting asks the delegate first and, in single selection
// mode, deselects every other item. It reports whether the selection changed.
func (t *Table) ToggleSelection() bool {
	r, ok := t.cursorRow()
	if !ok || !t.allowsSelection || t.delegate == nil {
		return false
	}
	at := r.at
	if t.selected[at] {
		t.DeselectItem(at)
		t.delegate.DidDeselectItem(t, at)
		return true
	}
	if !t.delegate.ShouldSelectItem(t, at) {
		return false
	}
	if !t.multipleSelection {
		for _, other := range t.SelectedItems() {
			t.DeselectItem(other)
			t.delegate.DidDeselectItem(t, other)
		}
	}
	t.SelectItem(at)
	t.delegate.DidSelectItem(t, at)
	return true
}

// View draws the rows inside the viewport.
func (t *Table) View() string {
	width := t.contentWidth()
	lines := make([]string, 0, t.height)
	for i := t.offset; i < len(t.rows) && len(lines) < t.height; i++ {
		r := t.rows[i]
		drawn := drawView(t.visible[r.rowKey], width)
		rowLines := strings.Split(drawn, "\n")
		for j := range r.height {
			line := ""
			if j < len(rowLines) {
				line = rowLines[j]
			}
			lines = append(lines, line)
		}
	}
	if len(lines) > t.height {
		lines = lines[:t.height]
	}
	for len(lines) < t.height {
		lines = append(lines, "")
	}
	style := lipgloss.NewStyle().
		PaddingLeft(int(t.insets.Left)).
		Width(t.width).
		MaxWidth(t.width)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func drawView(v surface.ReusableView, width int) string {
	if v == nil {
		return ""
	}
	if d, ok := v.RenderedContent().(components.Drawer); ok {
		return d.Draw(width)
	}
	return ""
}

func (t *Table) contentWidth() int {
	return max(t.width-int(t.insets.Horizontal()), 1)
}

func (t *Table) cursorRow() (row, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return row{}, false
	}
	return t.rows[t.cursor], true
}

func (t *Table) rowIndex(key rowKey) int {
	for i, r := range t.rows {
		if r.rowKey == key {
			return i
		}
	}
	return -1
}

// nextItemRow returns the first cell row after from in direction dir, or -1.
func (t *Table) nextItemRow(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(t.rows); i += dir {
		if t.rows[i].kind == rowCell {
			return i
		}
	}
	return -1
}

func (t *Table) layoutRows() {
	t.rows = t.rows[:0]
	if t.dataSource == nil {
		return
	}
	for sec := range t.dataSource.NumberOfSections(t) {
		t.appendRow(rowKey{kind: rowHeader, at: component.IndexPath{Section: sec}})
		for item := range t.dataSource.NumberOfItems(t, sec) {
			t.appendRow(rowKey{kind: rowCell, at: component.IndexPath{Section: sec, Item: item}})
		}
		t.appendRow(rowKey{kind: rowFooter, at: component.IndexPath{Section: sec}})
	}
}

func (t *Table) appendRow(key rowKey) {
	if h := t.measure(key); h > 0 {
		t.rows = append(t.rows, row{rowKey: key, height: h})
	}
}

// measure returns the row height of key in lines. Supplementary rows
// without a size are left out; items are at least one line high.
func (t *Table) measure(key rowKey) int {
	layout, ok := t.delegate.(surface.LayoutDelegate)
	if !ok {
		if key.kind == rowCell {
			return 1
		}
		return 0
	}
	var size geometry.Size
	switch key.kind {
	case rowHeader:
		size = layout.ReferenceSizeForHeader(contentSurface{t}, key.at.Section)
	case rowFooter:
		size = layout.ReferenceSizeForFooter(contentSurface{t}, key.at.Section)
	default:
		return max(int(math.Ceil(layout.SizeForItem(t, key.at).Height)), 1)
	}
	return int(math.Ceil(size.Height))
}

// contentSurface sizes headers and footers against the width they are drawn
// at. Items get the same narrowing from the flow layout's content insets.
type contentSurface struct{ *Table }

func (c contentSurface) Bounds() geometry.Rect {
	return geometry.RectFromLTWH(0, 0, float64(c.contentWidth()), float64(c.height))
}

func (t *Table) scrollToCursor() {
	if t.cursor < 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
		return
	}
	for t.offset < t.cursor && t.linesBetween(t.offset, t.cursor) > t.height {
		t.offset++
	}
}

// linesBetween returns the lines taken by rows from..to inclusive.
func (t *Table) linesBetween(from, to int) int {
	n := 0
	for i := from; i <= to; i++ {
		n += t.rows[i].height
	}
	return n
}

// updateVisible ends display of rows that left the viewport and realizes
// rows that entered it.
func (t *Table) updateVisible() {
	var order []rowKey
	inside := make(map[rowKey]bool)
	lines := 0
	for i := t.offset; i < len(t.rows) && lines < t.height; i++ {
		order = append(order, t.rows[i].rowKey)
		inside[t.rows[i].rowKey] = true
		lines += t.rows[i].height
	}
	for key, v := range t.visible {
		if !inside[key] {
			t.endDisplay(key, v)
			delete(t.visible, key)
		}
	}
	for _, key := range order {
		if _, ok := t.visible[key]; !ok {
			t.display(key)
		}
	}
}

func (t *Table) display(key rowKey) {
	if key.kind != rowCell {
		kind := key.kind.elementKind()
		v := t.dataSource.SupplementaryView(t, kind, key.at)
		t.visible[key] = v
		t.delegate.WillDisplaySupplementary(t, v, kind, key.at)
		return
	}
	v := t.dataSource.CellForItem(t, key.at)
	v.SetSelected(t.selected[key.at])
	cur, ok := t.cursorRow()
	v.SetHighlighted(ok && t.highlighted && cur.rowKey == key)
	t.visible[key] = v
	t.delegate.WillDisplayCell(t, v, key.at)
}

func (t *Table) endDisplay(key rowKey, v surface.ReusableView) {
	identifier := v.RenderedComponent().ReuseIdentifier()
	if key.kind != rowCell {
		kind := key.kind.elementKind()
		t.delegate.DidEndDisplayingSupplementary(t, v, kind, key.at)
		t.pool.EnqueueSupplementary(kind, identifier, v)
		return
	}
	v.SetHighlighted(false)
	t.delegate.DidEndDisplayingCell(t, v, key.at)
	t.pool.Enqueue(identifier, v)
	t.log().Debug("recycled row", "surface", t.id, "path", key.at, "identifier", identifier)
}

func (t *Table) unhighlight() {
	r, ok := t.cursorRow()
	if !ok || !t.highlighted {
		return
	}
	t.highlighted = false
	if v := t.visible[r.rowKey]; v != nil {
		v.SetHighlighted(false)
	}
	t.delegate.DidUnhighlightItem(t, r.at)
}

func (t *Table) highlight() {
	r, ok := t.cursorRow()
	if !ok || t.delegate == nil || !t.delegate.ShouldHighlightItem(t, r.at) {
		return
	}
	t.highlighted = true
	if v := t.visible[r.rowKey]; v != nil {
		v.SetHighlighted(true)
	}
	t.delegate.DidHighlightItem(t, r.at)
}

func (t *Table) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}
