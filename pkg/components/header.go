package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
)

// Header is a bold title for section headers and footers.
type Header struct {
	Key   any
	Title string
	// Muted draws the title faint, as footers usually are.
	Muted bool
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedHeaderStyle = lipgloss.NewStyle().Faint(true)
)

// NewHeader returns an erased header.
func NewHeader(title string) component.AnyComponent {
	return component.Erase[*TextContent](Header{Title: title})
}

// NewFooter returns an erased muted header.
func NewFooter(title string) component.AnyComponent {
	return component.Erase[*TextContent](Header{Title: title, Muted: true})
}

func (h Header) ID() any {
	if h.Key != nil {
		return h.Key
	}
	return h.Title
}

func (Header) RenderContent() *TextContent { return &TextContent{} }

func (h Header) Render(content *TextContent) {
	content.text = h.Title
	content.style = headerStyle
	if h.Muted {
		content.style = mutedHeaderStyle
	}
}

func (h Header) ReferenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	rows := len(LayoutText(h.Title, max(bounds.Width(), 1), Cells).Lines)
	return geometry.Size{Width: bounds.Width(), Height: float64(rows)}, true
}

func (h Header) ShouldContentUpdate(next Header) bool {
	return h.Title != next.Title || h.Muted != next.Muted
}

func (Header) ShouldHighlight(component.IndexPath) bool { return false }

func (Header) ShouldSelect(component.IndexPath) bool { return false }
