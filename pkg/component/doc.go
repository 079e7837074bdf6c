// Package component defines the contract every renderable unit satisfies and
// the type-erased handle that lets unrelated component types share one
// ordered structure.
//
// # Components
//
// A component is an immutable description of what a reusable view should
// show. The only required methods produce and fill a content value:
//
//	type Label struct {
//	    Text string
//	}
//
//	func (Label) RenderContent() *TextContent      { return &TextContent{} }
//	func (l Label) Render(content *TextContent)    { content.Text = l.Text }
//
// Everything else is optional. A component opts into a behavior by
// implementing the matching interface ([Identifier], [ReferenceSizer],
// [ContentUpdater], [RenderDecider], [Layouter], [IntrinsicSizer],
// [WillDisplayer], [EndDisplayer], [HighlightDecider], [Highlighter],
// [SelectDecider], [SelectionObserver], [Selectable]). Absent methods fall back
// to documented defaults.
//
// # Type erasure
//
// [Erase] wraps a concrete component in an [AnyComponent]:
//
//	c := component.Erase[*TextContent](Label{Text: "hello"})
//
// Erasing an AnyComponent returns it unchanged. Every call on the handle is
// dispatched to the wrapped value. Calls that receive a content value first
// recover the content type the wrapped component expects; when that fails
// the call does nothing or returns a conservative default, because a
// recycled view may transiently carry content made for another component.
package component
