package testing

import (
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/section"
)

type rowContent struct {
	text     string
	selected bool
}

func (c *rowContent) SetSelected(selected bool) { c.selected = selected }

type row struct {
	Text     string
	Selected bool
}

func (row) RenderContent() *rowContent   { return &rowContent{} }
func (r row) Render(content *rowContent) { content.text = r.Text }
func (r row) IsSelected() bool           { return r.Selected }

func node(id any, text string) section.Node {
	return section.NewNode(id, component.Erase[*rowContent](row{Text: text}))
}

func row2(id any, text string, selected bool) section.Node {
	return section.NewNode(id, component.Erase[*rowContent](row{Text: text, Selected: selected}))
}
