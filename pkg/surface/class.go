package surface

import (
	"reflect"
)

// Class identifies a concrete reusable view type and knows how to create it.
type Class struct {
	typ     reflect.Type
	newView func() ReusableView
}

// ClassOf returns the class of V, created with newView.
func ClassOf[V ReusableView](newView func() V) Class {
	return Class{
		typ:     reflect.TypeFor[V](),
		newView: func() ReusableView { return newView() },
	}
}

// IsZero reports whether c describes no class.
func (c Class) IsZero() bool {
	return c.typ == nil
}

// Name returns the Go type name of the class.
func (c Class) Name() string {
	if c.typ == nil {
		return "<none>"
	}
	return c.typ.String()
}

// New creates an instance of the class.
func (c Class) New() ReusableView {
	if c.newView == nil {
		return nil
	}
	return c.newView()
}

// IsMember reports whether v's runtime type is exactly this class.
func (c Class) IsMember(v ReusableView) bool {
	return v != nil && c.typ != nil && reflect.TypeOf(v) == c.typ
}

// Equal reports whether c and other describe the same type.
func (c Class) Equal(other Class) bool {
	return c.typ == other.typ
}

func (c Class) String() string {
	return c.Name()
}

// Template produces pre-configured instances, as a resource template would.
type Template interface {
	Instantiate() ReusableView
}

// TemplateFunc adapts a function to Template.
type TemplateFunc func() ReusableView

// Instantiate calls f.
func (f TemplateFunc) Instantiate() ReusableView {
	return f()
}

// Registration binds an identifier to the class of views it produces and,
// optionally, a template to create them from.
type Registration struct {
	Class    Class
	Template Template
}

// NewInstance creates a view from the template if any, otherwise from the class.
func (r Registration) NewInstance() ReusableView {
	if r.Template != nil {
		return r.Template.Instantiate()
	}
	return r.Class.New()
}
