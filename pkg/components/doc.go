// Package components provides stock components for terminal surfaces.
//
// Sizes reported to surfaces through ReferenceSize are in terminal cells.
// Intrinsic content sizes are in points of a fixed 7x13 bitmap face, which
// is what headless layouts of the same data use.
package components
