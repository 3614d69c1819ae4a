// Package ui provides a two-region split pane for Bubble Tea programs.
//
// Core abstractions:
//   - Splitter: two regions and a divider the user drags with the mouse
//   - DragTracker: the transient drag session (begin, update, end)
//   - ResolveSize / FirstBounds: pure size resolution and min/max clamping
//   - View: A region's content with its own model, update, view (Elm-style)
//   - Panel / Layout: regions and their bounds, used for hit testing and focus
//   - FocusManager: Tracks and rotates keyboard focus across regions
//   - KeybindRegistry / KeyHandler: SPC-leader key bindings for the host app
package ui
