// Package ui contains the Bubble Tea program that draws the window-switcher
// overlay.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses that edit the query update the prompt state
//     (internal/ui/state) and become switcher.QueryChanged events. Navigation
//     keys and mouse clicks become SelectionMoved or SelectIndex events, enter
//     commits and esc dismisses.
//   - The switcher engine calls back into the model through RenderList and
//     RenderPreview. Preview text is loaded asynchronously; each load carries a
//     sequence number so results for a window that is no longer highlighted
//     are dropped.
//
// Backend interactions:
//   - A backend.Watcher polls the window system and its snapshots arrive as
//     backendEventMsg values, which are forwarded as SnapshotUpdated events.
//   - Session wraps a Model in a tea.Program for the session manager. Teardown
//     sends a message into the running program so the engine is closed from
//     inside its own event loop.
package ui
