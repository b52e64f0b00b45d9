// Package ui contains the Bubble Tea program that renders the tmux menu bar.
// Model focuses on message orchestration while dedicated helpers own menu
// navigation, palette input, rendering, and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the command palette when it is open, then to the open
//     dropdown chain (internal/ui/navigation.go), and finally to the
//     keybinding registry which dispatches through the command bus.
//   - Command handlers return tea.Cmd values; their command.Result messages
//     update the status line.
//
// State ownership:
//   - The menu model lives in a menu.Registry filled by contributions. It is
//     mutated only on the Update goroutine; code running elsewhere sends a
//     ContributeMsg instead.
//   - Dropdowns are menuview.View values. They re-project their node from the
//     command registry every time they are shown and hand focus back to the
//     shell widget that owned it.
//   - Widgets are docked in a shell.Shell and created through the opener
//     service, which runs inside tea.Cmd goroutines.
//
// Backend interactions:
//   - A backend.Watcher streams tmux session lists; the dispatcher stores them
//     and rewrites the Session > Switch To submenu, after which the bar is
//     refreshed.
package ui
