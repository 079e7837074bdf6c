package termsurface

import "github.com/go-drift/carbon/pkg/surface"

// Cell is the class rows of items are displayed in.
type Cell struct {
	surface.Host
}

// HeaderFooterView is the class section headers and footers are displayed in.
type HeaderFooterView struct {
	surface.Host
}

var (
	// CellClass is the class of Cell.
	CellClass = surface.ClassOf(func() *Cell { return &Cell{} })
	// HeaderFooterViewClass is the class of HeaderFooterView.
	HeaderFooterViewClass = surface.ClassOf(func() *HeaderFooterView { return &HeaderFooterView{} })
)
