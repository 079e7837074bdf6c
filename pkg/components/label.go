package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
)

// Label is a selectable line of text.
type Label struct {
	// Key identifies the label across renders. Text is used when nil.
	Key      any
	Text     string
	Selected bool
	// Disabled labels cannot be highlighted or selected.
	Disabled bool
}

var (
	_ component.Component[*TextContent] = Label{}
	_ component.Selectable              = Label{}
)

var (
	labelStyle         = lipgloss.NewStyle()
	disabledLabelStyle = lipgloss.NewStyle().Faint(true)
)

// NewLabel returns an erased label.
func NewLabel(text string) component.AnyComponent {
	return component.Erase[*TextContent](Label{Text: text})
}

// ID returns Key, or Text without a key.
func (l Label) ID() any {
	if l.Key != nil {
		return l.Key
	}
	return l.Text
}

func (Label) RenderContent() *TextContent {
	return &TextContent{marked: true}
}

func (l Label) Render(content *TextContent) {
	content.text = l.Text
	content.style = labelStyle
	if l.Disabled {
		content.style = disabledLabelStyle
	}
}

// IsSelected reports the declared selection state.
func (l Label) IsSelected() bool { return l.Selected }

// ReferenceSize is the full width and as many rows as the wrapped text needs.
func (l Label) ReferenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	width := bounds.Width()
	avail := max(width-float64(lipgloss.Width(markUnselected)), 1)
	rows := len(LayoutText(l.Text, avail, Cells).Lines)
	return geometry.Size{Width: width, Height: float64(rows)}, true
}

func (l Label) ShouldContentUpdate(next Label) bool {
	return l.Text != next.Text || l.Selected != next.Selected || l.Disabled != next.Disabled
}

func (l Label) ShouldRender(next Label, content *TextContent) bool {
	return content.text != next.Text || l.Disabled != next.Disabled
}

func (l Label) ShouldHighlight(component.IndexPath) bool { return !l.Disabled }

func (l Label) ShouldSelect(component.IndexPath) bool { return !l.Disabled }
