// Package catalog turns a carbon.yaml document into sections and keeps the
// user's selection across renders.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/carbon/cmd/carbon/internal/config"
	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/components"
	"github.com/go-drift/carbon/pkg/renderer"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// Key identifies an item across renders.
type Key struct {
	Section string
	Item    string
}

func (k Key) String() string { return k.Section + "/" + k.Item }

// Catalog is a components factory over a fixed document.
type Catalog struct {
	sections []config.SectionConfig
	selected map[Key]bool
	single   bool
	target   surface.Target
	logger   *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSingleSelection keeps at most one item selected. Selecting an item
// drops every other selection, including items the surface no longer shows
// as selected.
func WithSingleSelection() Option {
	return func(c *Catalog) { c.single = true }
}

var (
	_ renderer.ComponentsFactory = (*Catalog)(nil)
	_ renderer.TargetSetter      = (*Catalog)(nil)
)

// New returns a catalog whose selection starts from the document. With
// single selection only the first selected item of the document is kept.
func New(sections []config.SectionConfig, logger *slog.Logger, opts ...Option) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		sections: sections,
		selected: make(map[Key]bool),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	for i, sec := range sections {
		for j, item := range sec.Items {
			if !item.Selected || item.Disabled || item.Spacer != 0 {
				continue
			}
			if c.single && len(c.selected) > 0 {
				continue
			}
			c.selected[Key{sec.SectionID(i), sec.ItemID(j)}] = true
		}
	}
	return c
}

// SetTarget records the surface the sections are rendered on.
func (c *Catalog) SetTarget(target surface.Target) { c.target = target }

// MakeSections builds the current sections. Footers carry a selection count
// when the target allows selection.
func (c *Catalog) MakeSections() []section.Section {
	out := make([]section.Section, 0, len(c.sections))
	for i, sec := range c.sections {
		id := sec.SectionID(i)
		cells := make([]section.Node, 0, len(sec.Items))
		count := 0
		for j, item := range sec.Items {
			key := Key{id, sec.ItemID(j)}
			if item.Spacer > 0 {
				cells = append(cells, section.NewNode(key, components.NewSpacer(item.Spacer)))
				continue
			}
			selected := c.selected[key]
			if selected {
				count++
			}
			cells = append(cells, section.NewNode(key, component.Erase[*components.TextContent](components.Label{
				Key:      key,
				Text:     item.Text,
				Selected: selected,
				Disabled: item.Disabled,
			})))
		}

		s := section.New(id, cells...)
		if sec.Header != "" {
			s = s.WithHeader(section.NewNode(id+"/header", components.NewHeader(sec.Header)))
		}
		if footer := c.footer(sec, count); footer != "" {
			s = s.WithFooter(section.NewNode(id+"/footer", components.NewFooter(footer)))
		}
		out = append(out, s)
	}
	return out
}

func (c *Catalog) footer(sec config.SectionConfig, count int) string {
	if c.target == nil || !c.target.AllowsSelection() || count == 0 {
		return sec.Footer
	}
	if sec.Footer == "" {
		return fmt.Sprintf("%d selected", count)
	}
	return fmt.Sprintf("%s · %d selected", sec.Footer, count)
}

// Select records a selection delivered by the adapter.
func (c *Catalog) Select(ctx adapter.EventContext) { c.set(ctx, true) }

// Deselect records a deselection delivered by the adapter.
func (c *Catalog) Deselect(ctx adapter.EventContext) { c.set(ctx, false) }

func (c *Catalog) set(ctx adapter.EventContext, selected bool) {
	key, ok := ctx.Node.ID.(Key)
	if !ok {
		c.logger.Warn("ignoring selection of foreign node", "id", ctx.Node.ID, "path", ctx.IndexPath.String())
		return
	}
	if selected {
		if c.single {
			clear(c.selected)
		}
		c.selected[key] = true
	} else {
		delete(c.selected, key)
	}
	c.logger.Debug("selection changed", "key", key.String(), "selected", selected)
}

// Selected returns the selected keys in document order.
func (c *Catalog) Selected() []Key {
	var keys []Key
	for i, sec := range c.sections {
		for j := range sec.Items {
			key := Key{sec.SectionID(i), sec.ItemID(j)}
			if c.selected[key] {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
