// Package section models the ordered structure an adapter projects onto a
// surface: sections of identified nodes, each wrapping a type-erased
// component.
package section

import (
	"github.com/go-drift/carbon/pkg/component"
)

// Node pairs a stable identity with a component. Nodes sharing an ID across
// renders denote the same logical position; the identity is used by updaters,
// never by the adapter.
type Node struct {
	ID        any
	Component component.AnyComponent
}

// NewNode returns a node for an already erased component.
func NewNode(id any, c component.AnyComponent) Node {
	return Node{ID: id, Component: c}
}

// Section is an ordered group of cell nodes with an optional header and footer.
type Section struct {
	ID     any
	Header *Node
	Cells  []Node
	Footer *Node
}

// New returns a section with the given id and cells.
func New(id any, cells ...Node) Section {
	return Section{ID: id, Cells: cells}
}

// WithHeader returns a copy of s with header set.
func (s Section) WithHeader(header Node) Section {
	s.Header = &header
	return s
}

// WithFooter returns a copy of s with footer set.
func (s Section) WithFooter(footer Node) Section {
	s.Footer = &footer
	return s
}

// NumberOfItems returns the number of cell nodes.
func (s Section) NumberOfItems() int {
	return len(s.Cells)
}

// Compact returns the non-nil sections in order.
func Compact(sections ...*Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Identifiable is implemented by components that carry their own identity.
type Identifiable interface {
	ID() any
}

// BuildCells erases each component and identifies it by its own ID.
func BuildCells[C any, V interface {
	component.Component[C]
	Identifiable
}](components ...V) []Node {
	nodes := make([]Node, len(components))
	for i, c := range components {
		nodes[i] = Node{ID: c.ID(), Component: component.Erase[C](c)}
	}
	return nodes
}
