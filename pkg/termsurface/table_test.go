package termsurface

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/components"
	"github.com/go-drift/carbon/pkg/geometry"
	"github.com/go-drift/carbon/pkg/renderer"
	"github.com/go-drift/carbon/pkg/section"
	carbontest "github.com/go-drift/carbon/pkg/testing"
	"github.com/go-drift/carbon/pkg/updater"
)

func labels(n int) []section.Node {
	nodes := make([]section.Node, n)
	for i := range nodes {
		nodes[i] = section.NewNode(i, components.NewLabel(fmt.Sprintf("item %d", i)))
	}
	return nodes
}

func bind(t *testing.T, table *Table, data ...section.Section) *adapter.Adapter {
	t.Helper()
	a := adapter.New(AdapterOptions(adapter.WithData(data...))...)
	table.Bind(a, a)
	table.ReloadData()
	return a
}

func at(item int) component.IndexPath { return component.IndexPath{Item: item} }

func TestTableDisplaysSections(t *testing.T) {
	table := NewTable(WithSize(20, 10))
	bind(t, table, section.New("fruit",
		section.NewNode("a", components.NewLabel("apple")),
		section.NewNode("b", components.NewLabel("banana")),
	).WithHeader(section.NewNode("h", components.NewHeader("Fruit"))).
		WithFooter(section.NewNode("f", components.NewFooter("2 items"))))

	lines := strings.Split(table.View(), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "Fruit", strings.TrimSpace(lines[0]))
	assert.Equal(t, "○ apple", strings.TrimSpace(lines[1]))
	assert.Equal(t, "○ banana", strings.TrimSpace(lines[2]))
	assert.Equal(t, "2 items", strings.TrimSpace(lines[3]))
	assert.Empty(t, strings.TrimSpace(lines[4]))

	assert.IsType(t, &Cell{}, table.VisibleCell(at(0)))
	assert.IsType(t, &HeaderFooterView{}, table.visible[rowKey{kind: rowHeader}])

	cursor, ok := table.Cursor()
	require.True(t, ok)
	assert.Equal(t, at(0), cursor)
	assert.True(t, table.VisibleCell(at(0)).IsHighlighted())
}

func TestTableRecyclesRowsLeavingViewport(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	bind(t, table, section.New(0, labels(30)...))
	require.Equal(t, 5, table.Pool().Created())

	table.MoveCursor(20)

	cursor, _ := table.Cursor()
	assert.Equal(t, at(20), cursor)
	assert.NotNil(t, table.VisibleCell(at(20)))
	assert.NotNil(t, table.VisibleCell(at(16)))
	assert.Nil(t, table.VisibleCell(at(15)))
	assert.Nil(t, table.VisibleCell(at(0)))
	assert.Equal(t, 5, table.Pool().Created())
	assert.Contains(t, table.View(), "item 20")
	assert.NotContains(t, table.View(), "item 0 ")

	table.MoveCursor(-100)
	cursor, _ = table.Cursor()
	assert.Equal(t, at(0), cursor)
	assert.NotNil(t, table.VisibleCell(at(0)))
	assert.Equal(t, 5, table.Pool().Created())
}

func TestTableHighlightFollowsCursor(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	bind(t, table, section.New(0,
		section.NewNode(0, components.NewLabel("a")),
		section.NewNode(1, component.Erase[*components.TextContent](components.Label{Text: "b", Disabled: true})),
		section.NewNode(2, components.NewLabel("c")),
	))

	table.MoveCursor(1)
	assert.False(t, table.VisibleCell(at(0)).IsHighlighted())
	assert.False(t, table.VisibleCell(at(1)).IsHighlighted(), "disabled labels refuse highlight")

	table.MoveCursor(1)
	assert.True(t, table.VisibleCell(at(2)).IsHighlighted())
	content := table.VisibleCell(at(2)).RenderedContent().(*components.TextContent)
	assert.True(t, content.IsHighlighted())
}

func TestTableSingleSelection(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	bind(t, table, section.New(0, labels(3)...))

	require.True(t, table.ToggleSelection())
	assert.Equal(t, []component.IndexPath{at(0)}, table.SelectedItems())

	table.MoveCursor(1)
	require.True(t, table.ToggleSelection())
	assert.Equal(t, []component.IndexPath{at(1)}, table.SelectedItems())
	assert.False(t, table.VisibleCell(at(0)).IsSelected())
	assert.True(t, table.VisibleCell(at(1)).IsSelected())

	require.True(t, table.ToggleSelection())
	assert.Empty(t, table.SelectedItems())
}

func TestTableMultipleSelection(t *testing.T) {
	table := NewTable(WithSize(20, 5), WithSelection(true, true))
	bind(t, table, section.New(0, labels(3)...))

	table.ToggleSelection()
	table.MoveCursor(2)
	table.ToggleSelection()

	assert.Equal(t, []component.IndexPath{at(0), at(2)}, table.SelectedItems())
}

func TestTableSelectionRefused(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	bind(t, table, section.New(0,
		section.NewNode(0, component.Erase[*components.TextContent](components.Label{Text: "x", Disabled: true})),
	))
	assert.False(t, table.ToggleSelection())

	off := NewTable(WithSize(20, 5), WithSelection(false, false))
	bind(t, off, section.New(0, labels(1)...))
	assert.False(t, off.ToggleSelection())
}

func TestTableWrapsTallRows(t *testing.T) {
	table := NewTable(WithSize(10, 4))
	bind(t, table, section.New(0,
		section.NewNode(0, components.NewLabel("one two three")),
		section.NewNode(1, components.NewLabel("four")),
	))

	lines := strings.Split(table.View(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "○ one two", strings.TrimSpace(lines[0]))
	assert.Equal(t, "three", strings.TrimSpace(lines[1]))
	assert.Equal(t, "○ four", strings.TrimSpace(lines[2]))
}

func TestTableReloadKeepsCursorPath(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	a := bind(t, table, section.New(0, labels(5)...))
	table.MoveCursor(3)

	a.SetData([]section.Section{section.New(0, labels(4)...)})
	table.ReloadData()
	cursor, _ := table.Cursor()
	assert.Equal(t, at(3), cursor)

	a.SetData([]section.Section{section.New(0, labels(2)...)})
	table.ReloadData()
	cursor, _ = table.Cursor()
	assert.Equal(t, at(0), cursor)

	a.SetData(nil)
	table.ReloadData()
	_, ok := table.Cursor()
	assert.False(t, ok)
	assert.False(t, table.ToggleSelection())
}

func TestTableSelectionFlowsThroughRenderer(t *testing.T) {
	names := []string{"tea", "coffee", "water"}
	chosen := map[string]bool{}
	table := NewTable(WithSize(30, 6))

	var r *renderer.Renderer
	render := func() {
		nodes := make([]section.Node, len(names))
		for i, name := range names {
			nodes[i] = section.NewNode(name, component.Erase[*components.TextContent](components.Label{Text: name, Selected: chosen[name]}))
		}
		r.Render(section.New("drinks", nodes...))
	}
	a := adapter.New(AdapterOptions(adapter.WithSelectionHandler(func(ctx adapter.EventContext) {
		name := ctx.Node.ID.(string)
		chosen[name] = !chosen[name]
		render()
	}))...)
	r = renderer.New(a, &updater.Staged{})
	r.SetTarget(table)
	render()

	table.MoveCursor(1)
	require.True(t, table.ToggleSelection())

	assert.True(t, chosen["coffee"])
	assert.True(t, table.IsItemSelected(at(1)))
	assert.Contains(t, table.View(), "● coffee")
	label, ok := component.As[components.Label](r.Data()[0].Cells[1].Component)
	require.True(t, ok)
	assert.True(t, label.Selected)
}

func TestTableDisposeForgetsRegistry(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	a := bind(t, table, section.New(0, labels(2)...))
	require.True(t, a.Registry().Tracks(table.SurfaceID()))

	disposed := 0
	table.OnDispose(func() { disposed++ })
	table.Dispose()

	assert.Equal(t, 1, disposed)
	assert.False(t, a.Registry().Tracks(table.SurfaceID()))
	assert.Nil(t, table.VisibleCell(at(0)))
}

func TestModel(t *testing.T) {
	table := NewTable(WithSize(30, 5))
	bind(t, table, section.New(0, labels(3)...))
	m := NewModel(table, "Drinks")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 8})
	m = next.(Model)
	assert.Equal(t, 40, table.width)
	assert.Equal(t, 6, table.height)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	cursor, _ := table.Cursor()
	assert.Equal(t, at(1), cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.True(t, table.IsItemSelected(at(1)))

	view := m.View()
	assert.Contains(t, view, "Drinks")
	assert.Contains(t, view, "1 selected")
	assert.Contains(t, view, "● item 1")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())
}

func TestTableWrapsHeadersAtContentWidth(t *testing.T) {
	table := NewTable(WithSize(20, 6), WithInsets(geometry.EdgeInsets{Left: 3, Right: 3}))
	bind(t, table, section.New(0, labels(1)...).
		WithHeader(section.NewNode("h", components.NewHeader("Fruit and vegetables"))))

	// 14 cells are left for the title, so it takes two rows.
	require.Equal(t, 2, table.rows[0].height)
	lines := strings.Split(table.View(), "\n")
	assert.Equal(t, "Fruit and", strings.TrimSpace(lines[0]))
	assert.Equal(t, "vegetables", strings.TrimSpace(lines[1]))
	assert.Equal(t, "○ item 0", strings.TrimSpace(lines[2]))
}

func TestTableReloadDropsSelection(t *testing.T) {
	table := NewTable(WithSize(20, 5))
	plain := func(id, title string) section.Node {
		return section.NewNode(id, components.NewHeader(title))
	}
	a := bind(t, table, section.New(0, plain("x", "x"), plain("y", "y")))
	table.SelectItem(at(0))

	a.SetData([]section.Section{section.New(0,
		plain("new", "new"),
		plain("x", "x"),
		section.NewNode("y", component.Erase[*components.TextContent](components.Label{Text: "y", Selected: true})),
	)})
	table.ReloadData()

	assert.False(t, table.IsItemSelected(at(0)))
	assert.False(t, table.VisibleCell(at(0)).IsSelected())
	// Components that declare their selection get it back.
	assert.Equal(t, []component.IndexPath{at(2)}, table.SelectedItems())
}

func TestModelRecoversHandlerPanic(t *testing.T) {
	h := carbontest.CaptureErrors(t)
	table := NewTable(WithSize(30, 5))
	a := adapter.New(AdapterOptions(
		adapter.WithData(section.New(0, labels(2)...)),
		adapter.WithSelectionHandler(func(adapter.EventContext) { panic("handler failed") }),
	)...)
	table.Bind(a, a)
	table.ReloadData()
	m := NewModel(table, "Drinks")

	var next tea.Model
	require.NotPanics(t, func() {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	})
	require.IsType(t, Model{}, next)
	assert.Same(t, table, next.(Model).Table())

	panics := h.Panics()
	require.Len(t, panics, 1)
	assert.Equal(t, "termsurface.Model.Update", panics[0].Op)
	assert.Equal(t, "handler failed", panics[0].Value)

	// The model keeps working after the recovered panic.
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	cursor, _ := next.(Model).Table().Cursor()
	assert.Equal(t, at(1), cursor)
}
