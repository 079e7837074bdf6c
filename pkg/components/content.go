package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carbon/pkg/geometry"
)

// Drawer is content that can draw itself into a terminal row of width cells.
type Drawer interface {
	Draw(width int) string
}

// TextContent displays wrapped text.
type TextContent struct {
	text        string
	style       lipgloss.Style
	marked      bool
	selected    bool
	highlighted bool
}

var (
	_ Drawer = (*TextContent)(nil)
	_ Drawer = (*SpacerContent)(nil)
)

const (
	markSelected   = "● "
	markUnselected = "○ "
)

// Text returns the displayed text.
func (c *TextContent) Text() string { return c.text }

// IsSelected reports the selected flag mirrored from the hosting view.
func (c *TextContent) IsSelected() bool { return c.selected }

// IsHighlighted reports the highlighted flag mirrored from the hosting view.
func (c *TextContent) IsHighlighted() bool { return c.highlighted }

// SetSelected mirrors the selected flag of the hosting view.
func (c *TextContent) SetSelected(selected bool) { c.selected = selected }

// SetHighlighted mirrors the highlighted flag of the hosting view.
func (c *TextContent) SetHighlighted(highlighted bool) { c.highlighted = highlighted }

// IntrinsicContentSize returns the unwrapped size of the text in points.
func (c *TextContent) IntrinsicContentSize() geometry.Size {
	return LayoutText(c.prefix()+c.text, 0, Points).Size
}

// Draw renders the text wrapped to width. Highlighted content is drawn in
// reverse video.
func (c *TextContent) Draw(width int) string {
	style := c.style
	if c.highlighted {
		style = style.Reverse(true)
	}
	prefix := c.prefix()
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	avail := max(width-lipgloss.Width(prefix), 1)

	lines := LayoutText(c.text, float64(avail), Cells).Strings()
	rows := make([]string, len(lines))
	for i, line := range lines {
		lead := indent
		if i == 0 {
			lead = prefix
		}
		rows[i] = style.Width(width).MaxWidth(width).Render(lead + line)
	}
	return strings.Join(rows, "\n")
}

func (c *TextContent) prefix() string {
	switch {
	case !c.marked:
		return ""
	case c.selected:
		return markSelected
	default:
		return markUnselected
	}
}

// SpacerContent is blank space.
type SpacerContent struct {
	height int
}

// Height returns the number of blank rows.
func (c *SpacerContent) Height() int { return c.height }

// IntrinsicContentSize returns the height of the blank rows in points, one
// text line per row, and no width.
func (c *SpacerContent) IntrinsicContentSize() geometry.Size {
	_, lineHeight := Points.measurer()
	return geometry.Size{Height: float64(c.height) * lineHeight}
}

// Draw renders height blank rows of width cells.
func (c *SpacerContent) Draw(width int) string {
	if c.height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", max(width, 0))
	return strings.Repeat(row+"\n", c.height-1) + row
}
