// Package ui contains the Bubble Tea program that presents the kaomoji picker.
// The picker state machine lives in internal/picker; this package only turns
// terminal input into picker events and carries out the effects the
// controller returns.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse clicks, hotkey events, command results).
//   - Key bindings (internal/ui/keys.go) map navigation, commit and dismiss
//     keys to picker events. Every other key edits the query field; when the
//     text changes the model dispatches a query change.
//   - dispatch applies the returned effects in order. Effects that touch the
//     outside world (clipboard writes, tmux focus) run asynchronously through
//     the internal/ui/command bus and report back as command.Result.
//
// Hotkey interactions:
//   - A hotkey.Source delivers activation requests. Init starts waiting on it
//     and every handled event re-arms the wait, mirroring a watcher loop.
//   - While hidden the view is a single idle line; only an activation or
//     ctrl+c does anything.
package ui
