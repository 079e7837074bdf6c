package components

import (
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/geometry"
)

// Spacer is blank space of a fixed number of rows.
type Spacer struct {
	Height int
}

// NewSpacer returns an erased spacer.
func NewSpacer(height int) component.AnyComponent {
	return component.Erase[*SpacerContent](Spacer{Height: height})
}

func (Spacer) RenderContent() *SpacerContent { return &SpacerContent{} }

func (s Spacer) Render(content *SpacerContent) { content.height = max(s.Height, 0) }

func (s Spacer) ReferenceSize(bounds geometry.Rect) (geometry.Size, bool) {
	return geometry.Size{Width: bounds.Width(), Height: float64(max(s.Height, 0))}, true
}

func (s Spacer) ShouldContentUpdate(next Spacer) bool { return s != next }

func (Spacer) ShouldHighlight(component.IndexPath) bool { return false }

func (Spacer) ShouldSelect(component.IndexPath) bool { return false }
