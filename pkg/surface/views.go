package surface

// ComponentCell is the default cell class: a plain Host.
type ComponentCell struct {
	Host
}

// ComponentView is the default class for headers, footers and other
// supplementary views.
type ComponentView struct {
	Host
}

// EmptyView stands in for a supplementary view that could not be resolved.
// It is never registered and never rendered into.
type EmptyView struct {
	Host
}

var (
	// ComponentCellClass is the class of ComponentCell.
	ComponentCellClass = ClassOf(func() *ComponentCell { return &ComponentCell{} })
	// ComponentViewClass is the class of ComponentView.
	ComponentViewClass = ClassOf(func() *ComponentView { return &ComponentView{} })
	// EmptyViewClass is the class of EmptyView.
	EmptyViewClass = ClassOf(func() *EmptyView { return &EmptyView{} })
)
