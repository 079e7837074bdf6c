package termsurface

import (
	"github.com/go-drift/carbon/pkg/adapter"
	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/section"
	"github.com/go-drift/carbon/pkg/surface"
)

// AdapterOptions registers Cell for items and HeaderFooterView for headers
// and footers. Append further options to customize the adapter.
func AdapterOptions(opts ...adapter.Option) []adapter.Option {
	return append([]adapter.Option{
		adapter.WithCellRegistrationBehavior(adapter.Static(CellClass)),
		adapter.WithSupplementaryRegistration(func(string, surface.Surface, component.IndexPath, section.Node) surface.Registration {
			return surface.Registration{Class: HeaderFooterViewClass}
		}),
	}, opts...)
}
